//go:build unit

package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"promenu/internal/domain/catalog"
	"promenu/internal/domain/tenant"
	"promenu/internal/infra"
	"promenu/internal/pkg/errs"
	"promenu/internal/usecase"
	"promenu/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TenantCommandsTestSuite struct {
	suite.Suite
	backend  *mockTenantBackend
	assets   *mockAssetBackend
	gateway  *mockGateway
	commands commands.TenantCommands
}

func (s *TenantCommandsTestSuite) SetupTest() {
	s.backend = new(mockTenantBackend)
	s.assets = new(mockAssetBackend)
	s.gateway = new(mockGateway)
	policy := tenant.NewAdminPolicy([]string{"root@platform.com"})
	s.commands = commands.NewTenantCommands(s.backend, s.assets, s.gateway, policy, slog.Default())
}

func TestTenantCommandsSuite(t *testing.T) {
	suite.Run(t, new(TenantCommandsTestSuite))
}

func ownerIdentity() *tenant.Identity {
	return &tenant.Identity{Email: "owner@example.com"}
}

func ownedSnapshot() *usecase.Snapshot {
	return &usecase.Snapshot{
		Tenant: tenant.Tenant{
			ID:          "corner-deli",
			Name:        "Corner Deli",
			OwnerEmails: tenant.OwnerEmails{"owner@example.com"},
		},
	}
}

func (s *TenantCommandsTestSuite) TestCreateTenant() {
	ctx := context.Background()
	req := commands.CreateTenantRequest{ID: "corner-deli", Name: "Corner Deli"}

	s.Run("success sets actor as owner", func() {
		s.backend.On("CreateTenant", mock.Anything, mock.MatchedBy(func(t *tenant.Tenant) bool {
			return t.ID == "corner-deli" && t.OwnerEmails.Contains("owner@example.com")
		})).Return(nil).Once()
		s.gateway.On("PatchListing", mock.Anything, mock.Anything).Return(true).Once()

		created, err := s.commands.CreateTenant(ctx, ownerIdentity(), req)
		s.Require().NoError(err)
		s.Equal(tenant.ID("corner-deli"), created.ID)
		s.backend.AssertExpectations(s.T())
	})

	s.Run("anonymous actor rejected", func() {
		_, err := s.commands.CreateTenant(ctx, nil, req)
		s.ErrorIs(err, errs.ErrUnauthorized)
	})

	s.Run("invalid id rejected before backend", func() {
		_, err := s.commands.CreateTenant(ctx, ownerIdentity(), commands.CreateTenantRequest{ID: "Bad ID"})
		s.ErrorIs(err, tenant.ErrInvalidTenantID)
	})

	s.Run("reserved id rejected", func() {
		_, err := s.commands.CreateTenant(ctx, ownerIdentity(), commands.CreateTenantRequest{ID: "manage"})
		s.ErrorIs(err, tenant.ErrReservedTenantID)
	})

	s.Run("duplicate id maps to already-exists", func() {
		s.backend.On("CreateTenant", mock.Anything, mock.Anything).
			Return(infra.BackendError{Kind: infra.KindDuplicateKey}).Once()

		_, err := s.commands.CreateTenant(ctx, ownerIdentity(), req)
		s.ErrorIs(err, errs.ErrTenantAlreadyExists)
	})
}

func (s *TenantCommandsTestSuite) TestUpdateTenant() {
	ctx := context.Background()
	req := commands.UpdateTenantRequest{Name: "Renamed Deli", Description: "new"}

	s.Run("owner can update", func() {
		s.gateway.On("LoadTenantAndCatalog", mock.Anything, tenant.ID("corner-deli"), false).
			Return(ownedSnapshot(), nil).Once()
		s.backend.On("UpdateTenant", mock.Anything, mock.MatchedBy(func(t *tenant.Tenant) bool {
			return t.Name == "Renamed Deli"
		})).Return(nil).Once()
		s.gateway.On("PatchSnapshot", mock.Anything, tenant.ID("corner-deli"), mock.Anything).Return(true).Once()
		s.gateway.On("PatchListing", mock.Anything, mock.Anything).Return(true).Once()

		updated, err := s.commands.UpdateTenant(ctx, ownerIdentity(), "corner-deli", req)
		s.Require().NoError(err)
		s.Equal("Renamed Deli", updated.Name)
		// Owners survive an update that does not touch them.
		s.True(updated.OwnerEmails.Contains("owner@example.com"))
	})

	s.Run("platform admin can update", func() {
		s.gateway.On("LoadTenantAndCatalog", mock.Anything, tenant.ID("corner-deli"), false).
			Return(ownedSnapshot(), nil).Once()
		s.backend.On("UpdateTenant", mock.Anything, mock.Anything).Return(nil).Once()
		s.gateway.On("PatchSnapshot", mock.Anything, tenant.ID("corner-deli"), mock.Anything).Return(true).Once()
		s.gateway.On("PatchListing", mock.Anything, mock.Anything).Return(true).Once()

		_, err := s.commands.UpdateTenant(ctx, &tenant.Identity{Email: "root@platform.com"}, "corner-deli", req)
		s.NoError(err)
	})

	s.Run("stranger rejected without backend call", func() {
		s.gateway.On("LoadTenantAndCatalog", mock.Anything, tenant.ID("corner-deli"), false).
			Return(ownedSnapshot(), nil).Once()

		_, err := s.commands.UpdateTenant(ctx, &tenant.Identity{Email: "visitor@example.com"}, "corner-deli", req)
		s.ErrorIs(err, errs.ErrUnauthorized)
		s.backend.AssertNotCalled(s.T(), "UpdateTenant", mock.Anything, mock.Anything)
	})

	s.Run("backend failure leaves cache untouched", func() {
		s.gateway.On("LoadTenantAndCatalog", mock.Anything, tenant.ID("corner-deli"), false).
			Return(ownedSnapshot(), nil).Once()
		s.backend.On("UpdateTenant", mock.Anything, mock.Anything).
			Return(infra.BackendError{Kind: infra.KindDBFailure}).Once()

		_, err := s.commands.UpdateTenant(ctx, ownerIdentity(), "corner-deli", req)
		s.ErrorIs(err, errs.ErrBackendFailure)
		s.gateway.AssertNotCalled(s.T(), "PatchSnapshot", mock.Anything, mock.Anything, mock.Anything)
	})
}

func (s *TenantCommandsTestSuite) TestDeleteTenant() {
	ctx := context.Background()

	s.Run("success cleans up assets and cache", func() {
		snap := ownedSnapshot()
		snap.Catalog = []catalog.Item{
			{ID: uuid.New(), TenantID: "corner-deli", Name: "Espresso", AssetPath: "tenants/corner-deli/items/a.webp"},
			{ID: uuid.New(), TenantID: "corner-deli", Name: "Bagel"},
		}

		s.gateway.On("LoadTenantAndCatalog", mock.Anything, tenant.ID("corner-deli"), false).
			Return(snap, nil).Once()
		s.backend.On("DeleteTenant", mock.Anything, tenant.ID("corner-deli")).Return(nil).Once()
		s.assets.On("Delete", mock.Anything, "tenants/corner-deli/items/a.webp").Return(nil).Once()
		s.gateway.On("InvalidateTenant", mock.Anything, tenant.ID("corner-deli")).Once()
		s.gateway.On("PatchListing", mock.Anything, mock.Anything).Return(true).Once()

		err := s.commands.DeleteTenant(ctx, ownerIdentity(), "corner-deli")
		s.Require().NoError(err)
		s.assets.AssertExpectations(s.T())
	})

	s.Run("asset cleanup failure is swallowed", func() {
		snap := ownedSnapshot()
		snap.Catalog = []catalog.Item{
			{ID: uuid.New(), TenantID: "corner-deli", AssetPath: "tenants/corner-deli/items/a.webp", Name: "Espresso"},
		}

		s.gateway.On("LoadTenantAndCatalog", mock.Anything, tenant.ID("corner-deli"), false).
			Return(snap, nil).Once()
		s.backend.On("DeleteTenant", mock.Anything, tenant.ID("corner-deli")).Return(nil).Once()
		s.assets.On("Delete", mock.Anything, mock.Anything).Return(errors.New("asset store down")).Once()
		s.gateway.On("InvalidateTenant", mock.Anything, tenant.ID("corner-deli")).Once()
		s.gateway.On("PatchListing", mock.Anything, mock.Anything).Return(true).Once()

		// Record deletion already succeeded; the cleanup failure must not fail
		// the operation.
		err := s.commands.DeleteTenant(ctx, ownerIdentity(), "corner-deli")
		s.NoError(err)
	})

	s.Run("stranger rejected", func() {
		s.gateway.On("LoadTenantAndCatalog", mock.Anything, tenant.ID("corner-deli"), false).
			Return(ownedSnapshot(), nil).Once()

		err := s.commands.DeleteTenant(ctx, &tenant.Identity{Email: "visitor@example.com"}, "corner-deli")
		s.ErrorIs(err, errs.ErrUnauthorized)
		s.backend.AssertNotCalled(s.T(), "DeleteTenant", mock.Anything, mock.Anything)
	})
}
