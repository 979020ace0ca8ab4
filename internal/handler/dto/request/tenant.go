package request

import (
	"promenu/internal/domain/tenant"
	"promenu/internal/usecase/commands"
)

type CreateTenantRequest struct {
	ID          string `json:"id" binding:"required,min=2,max=63"`
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"max=2000"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

func (r *CreateTenantRequest) ToCommand() commands.CreateTenantRequest {
	return commands.CreateTenantRequest{
		ID:          tenant.ID(r.ID),
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

type UpdateTenantRequest struct {
	Name        string   `json:"name" binding:"required,max=120"`
	Description string   `json:"description" binding:"max=2000"`
	ImageURL    string   `json:"image_url" binding:"omitempty,url"`
	OwnerEmails []string `json:"owner_emails" binding:"omitempty,dive,email"`
}

func (r *UpdateTenantRequest) ToCommand() commands.UpdateTenantRequest {
	return commands.UpdateTenantRequest{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		OwnerEmails: r.OwnerEmails,
	}
}
