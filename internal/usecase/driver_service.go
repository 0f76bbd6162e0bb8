package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pitwall/gridbet/internal/domain/driver"
	"github.com/pitwall/gridbet/internal/platform/id"
)

type DriverService struct {
	driverRepo driver.Repository
	idGen      id.Generator
	now        func() time.Time
}

func NewDriverService(driverRepo driver.Repository, idGen id.Generator) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

type CreateDriverInput struct {
	FullName string
	TeamName string
	IsActive bool
}

func (s *DriverService) Create(ctx context.Context, input CreateDriverInput) (driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DriverService.Create")
	defer span.End()

	if input.FullName == "" {
		return driver.Driver{}, fmt.Errorf("%w: driver full name is required", ErrInvalidInput)
	}
	if input.TeamName == "" {
		return driver.Driver{}, fmt.Errorf("%w: driver team name is required", ErrInvalidInput)
	}

	driverID, err := s.idGen.NewID()
	if err != nil {
		return driver.Driver{}, fmt.Errorf("generate driver id: %w", err)
	}

	now := s.now().UTC()
	created := driver.Driver{
		ID:        driverID,
		FullName:  input.FullName,
		TeamName:  input.TeamName,
		IsActive:  input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.driverRepo.Create(ctx, created); err != nil {
		return driver.Driver{}, fmt.Errorf("create driver: %w", err)
	}
	return created, nil
}

func (s *DriverService) Get(ctx context.Context, driverID string) (driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DriverService.Get")
	defer span.End()

	return s.getDriver(ctx, driverID)
}

// List returns drivers ordered by name. With activeOnly true, retired drivers
// are filtered out; bet forms only offer the active grid.
func (s *DriverService) List(ctx context.Context, activeOnly bool) ([]driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DriverService.List")
	defer span.End()

	drivers, err := s.driverRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	if activeOnly {
		filtered := drivers[:0]
		for _, d := range drivers {
			if d.IsActive {
				filtered = append(filtered, d)
			}
		}
		drivers = filtered
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].FullName < drivers[j].FullName
	})
	return drivers, nil
}

func (s *DriverService) Update(ctx context.Context, driverID string, patch driver.Patch) (driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DriverService.Update")
	defer span.End()

	current, err := s.getDriver(ctx, driverID)
	if err != nil {
		return driver.Driver{}, err
	}

	if patch.FullName != nil {
		if *patch.FullName == "" {
			return driver.Driver{}, fmt.Errorf("%w: driver full name cannot be empty", ErrInvalidInput)
		}
		current.FullName = *patch.FullName
	}
	if patch.TeamName != nil {
		if *patch.TeamName == "" {
			return driver.Driver{}, fmt.Errorf("%w: driver team name cannot be empty", ErrInvalidInput)
		}
		current.TeamName = *patch.TeamName
	}
	if patch.IsActive != nil {
		current.IsActive = *patch.IsActive
	}
	current.UpdatedAt = s.now().UTC()

	if err := s.driverRepo.Update(ctx, current); err != nil {
		return driver.Driver{}, fmt.Errorf("update driver: %w", err)
	}
	return current, nil
}

func (s *DriverService) Delete(ctx context.Context, driverID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DriverService.Delete")
	defer span.End()

	if _, err := s.getDriver(ctx, driverID); err != nil {
		return err
	}
	if err := s.driverRepo.Delete(ctx, driverID); err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}

func (s *DriverService) getDriver(ctx context.Context, driverID string) (driver.Driver, error) {
	if driverID == "" {
		return driver.Driver{}, fmt.Errorf("%w: driver id is required", ErrInvalidInput)
	}
	current, found, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return driver.Driver{}, fmt.Errorf("get driver: %w", err)
	}
	if !found {
		return driver.Driver{}, fmt.Errorf("%w: driver %s", ErrNotFound, driverID)
	}
	return current, nil
}
