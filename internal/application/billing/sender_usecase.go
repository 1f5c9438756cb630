package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
	"github.com/jhoicas/invoice-builder-api/pkg/logger"
)

// SenderUseCase casos de uso para emisores. El email es único entre emisores.
type SenderUseCase struct {
	repo      repository.SenderRepository
	validator *validation.Validator
	log       *logger.Logger
}

// NewSenderUseCase construye el caso de uso.
func NewSenderUseCase(repo repository.SenderRepository, validator *validation.Validator, log *logger.Logger) *SenderUseCase {
	return &SenderUseCase{repo: repo, validator: validator, log: log.Component("senders")}
}

// Create crea un emisor; ErrDuplicate si el email ya está registrado.
func (uc *SenderUseCase) Create(ctx context.Context, in dto.CreateSenderRequest) (*dto.SenderResponse, error) {
	if err := in.Validate(uc.validator); err != nil {
		return nil, err
	}
	if err := uc.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}
	now := time.Now()
	sender := &entity.Sender{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, sender); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sender_id", sender.ID).Msg("emisor creado")
	return dto.ToSenderResponse(sender), nil
}

// GetByID devuelve el emisor o NotFound.
func (uc *SenderUseCase) GetByID(ctx context.Context, id string) (*dto.SenderResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewNotFound("Sender", "id", id)
	}
	return dto.ToSenderResponse(s), nil
}

// List lista emisores paginados.
func (uc *SenderUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PageResponse[*dto.SenderResponse], error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SenderResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSenderResponse(s))
	}
	return dto.NewPage(out, page, total), nil
}

// Update sobrescribe el emisor; si cambia el email se vuelve a comprobar que esté libre.
func (uc *SenderUseCase) Update(ctx context.Context, id string, in dto.CreateSenderRequest) (*dto.SenderResponse, error) {
	if err := in.Validate(uc.validator); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewNotFound("Sender", "id", id)
	}
	if !strings.EqualFold(s.Email, in.Email) {
		if err := uc.ensureEmailFree(ctx, in.Email); err != nil {
			return nil, err
		}
	}
	s.Name = in.Name
	s.Email = in.Email
	s.PhoneNumber = in.PhoneNumber
	s.Address = in.Address
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return dto.ToSenderResponse(s), nil
}

// Delete elimina el emisor; las facturas que lo referencian quedan sin emisor.
func (uc *SenderUseCase) Delete(ctx context.Context, id string) error {
	exists, err := uc.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("Sender", "id", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("sender_id", id).Msg("emisor eliminado")
	return nil
}

func (uc *SenderUseCase) ensureEmailFree(ctx context.Context, email string) error {
	taken, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: ya existe un emisor con email '%s'", domain.ErrDuplicate, email)
	}
	return nil
}
