package commands

import (
	"context"
	"errors"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/setting"
	"ftl/internal/pkg/guard"
)

var (
	ErrPutSettingCommandIsNotConstructed    = errors.New("PutSettingCommand must be created via NewPutSettingCommand constructor")
	ErrDeleteSettingCommandIsNotConstructed = errors.New("DeleteSettingCommand must be created via NewDeleteSettingCommand constructor")
)

// PutSettingCommand creates or replaces a global setting.
type PutSettingCommand struct {
	setting setting.Setting

	guard guard.ConstructorGuard
}

func NewPutSettingCommand(name, value string) (PutSettingCommand, error) {
	s, err := setting.NewSetting(name, value)
	if err != nil {
		return PutSettingCommand{}, err
	}
	return PutSettingCommand{setting: s, guard: guard.NewConstructorGuard()}, nil
}

func (c PutSettingCommand) Validate() error {
	return c.guard.Validate(ErrPutSettingCommandIsNotConstructed)
}

func (c PutSettingCommand) Setting() setting.Setting { return c.setting }

// DeleteSettingCommand removes a global setting.
type DeleteSettingCommand struct {
	name string

	guard guard.ConstructorGuard
}

func NewDeleteSettingCommand(name string) (DeleteSettingCommand, error) {
	if err := kernel.ValidateIdentifier("setting", name); err != nil {
		return DeleteSettingCommand{}, err
	}
	return DeleteSettingCommand{name: name, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteSettingCommand) Validate() error {
	return c.guard.Validate(ErrDeleteSettingCommandIsNotConstructed)
}

func (c DeleteSettingCommand) Name() string { return c.name }

// PutSettingCommandHandler stores a setting. Callers must be administrators;
// the HTTP adapter enforces that.
type PutSettingCommandHandler struct {
	uowFactory SettingUoWFactory
}

func NewPutSettingCommandHandler(uowFactory SettingUoWFactory) PutSettingCommandHandler {
	return PutSettingCommandHandler{uowFactory: uowFactory}
}

func (h *PutSettingCommandHandler) Handle(ctx context.Context, cmd PutSettingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SettingRepository().Put(ctx, cmd.Setting()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type DeleteSettingCommandHandler struct {
	uowFactory SettingUoWFactory
}

func NewDeleteSettingCommandHandler(uowFactory SettingUoWFactory) DeleteSettingCommandHandler {
	return DeleteSettingCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteSettingCommandHandler) Handle(ctx context.Context, cmd DeleteSettingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SettingRepository().Remove(ctx, cmd.Name()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
