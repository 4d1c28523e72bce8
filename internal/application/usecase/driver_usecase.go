package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rutastock-api/internal/application/dto"
	"github.com/jhoicas/rutastock-api/internal/domain"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

// DriverUseCase casos de uso CRUD para conductores. El inventario del conductor
// no vive aquí: se deriva de eventos vía el ledger.
type DriverUseCase struct {
	repo repository.DriverRepository
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(repo repository.DriverRepository) *DriverUseCase {
	return &DriverUseCase{repo: repo}
}

// Create crea un nuevo conductor activo.
func (uc *DriverUseCase) Create(in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	driver := &entity.Driver{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Phone:        in.Phone,
		LinkedUserID: in.LinkedUserID,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// GetByID obtiene un conductor por ID.
func (uc *DriverUseCase) GetByID(id string) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	return toDriverResponse(driver), nil
}

// Update actualiza los datos de contacto del conductor. Campos nil no se tocan.
func (uc *DriverUseCase) Update(id string, in dto.UpdateDriverRequest) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		driver.Name = *in.Name
	}
	if in.Phone != nil {
		driver.Phone = *in.Phone
	}
	if in.LinkedUserID != nil {
		driver.LinkedUserID = in.LinkedUserID
	}
	driver.UpdatedAt = time.Now()
	if err := uc.repo.Update(driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// List lista conductores con paginación.
func (uc *DriverUseCase) List(limit, offset int) (*dto.DriverListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDriverResponse(d))
	}
	return &dto.DriverListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Archive archiva un conductor (borrado lógico). El historial de eventos queda
// intacto y consultable; el ledger rechaza nuevos eventos del conductor archivado.
func (uc *DriverUseCase) Archive(id string) error {
	driver, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if driver == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Archive(id)
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	if d == nil {
		return nil
	}
	return &dto.DriverResponse{
		ID:           d.ID,
		Name:         d.Name,
		Phone:        d.Phone,
		LinkedUserID: d.LinkedUserID,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
