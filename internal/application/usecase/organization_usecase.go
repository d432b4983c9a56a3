package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

// OrganizationUseCase gestiona el árbol de organizaciones.
// Invariante central: la cadena de padres nunca forma un ciclo.
type OrganizationUseCase struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationUseCase {
	return &OrganizationUseCase{orgRepo: orgRepo, userRepo: userRepo}
}

// Create registra una organización nueva bajo un padre opcional.
func (uc *OrganizationUseCase) Create(actor *entity.User, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if !authz.CanCreateOrganization(actor) {
		return nil, domain.ErrAccessDenied
	}
	if in.ParentID != "" {
		parent, err := uc.orgRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	if err := uc.validateDirector(in.DirectorID); err != nil {
		return nil, err
	}
	now := time.Now()
	org := &entity.Organization{
		ID:         uuid.New().String(),
		Name:       in.Name,
		ParentID:   in.ParentID,
		DirectorID: in.DirectorID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.orgRepo.Create(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// validateDirector exige que el usuario señalado tenga un rol de dirección.
func (uc *OrganizationUseCase) validateDirector(directorID string) error {
	if directorID == "" {
		return nil
	}
	director, err := uc.userRepo.GetByID(directorID)
	if err != nil {
		return err
	}
	if director == nil {
		return domain.ErrUserNotFound
	}
	if !entity.IsDirectorRole(director.Role) {
		return domain.NewValidationError("director_id", "The selected user must have a Director role.")
	}
	return nil
}

// Get devuelve una organización si el actor puede verla.
func (uc *OrganizationUseCase) Get(actor *entity.User, orgID string) (*dto.OrganizationResponse, error) {
	org, err := uc.orgRepo.GetByID(orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewOrganization(actor, org) {
		return nil, domain.ErrAccessDenied
	}
	return toOrganizationResponse(org), nil
}

// List devuelve las organizaciones visibles para el actor.
func (uc *OrganizationUseCase) List(actor *entity.User, limit, offset int) ([]*dto.OrganizationResponse, error) {
	if !authz.CanViewAnyOrganizations(actor) {
		return nil, domain.ErrAccessDenied
	}
	scope := repository.ScopeFor(authz.ResolveScope(actor), actor.ID)
	orgs, err := uc.orgRepo.List(scope, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toOrganizationResponse(o))
	}
	return out, nil
}

// Update modifica una organización. Mover el padre revalida el invariante
// anti-ciclos contra el árbol completo.
func (uc *OrganizationUseCase) Update(actor *entity.User, orgID string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org, err := uc.orgRepo.GetByID(orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanUpdateOrganization(actor, org) {
		return nil, domain.ErrAccessDenied
	}
	if in.Name != nil {
		org.Name = *in.Name
	}
	if in.DirectorID != nil {
		if err := uc.validateDirector(*in.DirectorID); err != nil {
			return nil, err
		}
		org.DirectorID = *in.DirectorID
	}
	if in.ParentID != nil && *in.ParentID != org.ParentID {
		if err := uc.validateParentChain(org.ID, *in.ParentID); err != nil {
			return nil, err
		}
		org.ParentID = *in.ParentID
	}
	org.UpdatedAt = time.Now()
	if err := uc.orgRepo.Update(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// validateParentChain recorre la cadena de padres del candidato sobre el
// mapa plano del árbol: si aparece la propia organización hay ciclo.
func (uc *OrganizationUseCase) validateParentChain(orgID, newParentID string) error {
	if newParentID == "" {
		return nil
	}
	if newParentID == orgID {
		return domain.NewValidationError("parent_id", "una organización no puede ser su propio padre")
	}
	tree, err := uc.orgRepo.GetTree()
	if err != nil {
		return err
	}
	if _, ok := tree[newParentID]; !ok {
		return domain.ErrNotFound
	}
	seen := map[string]struct{}{}
	for current := newParentID; current != ""; {
		if current == orgID {
			return domain.NewValidationError("parent_id", "el nuevo padre crearía un ciclo en el árbol de organizaciones")
		}
		if _, ok := seen[current]; ok {
			// Ciclo preexistente en datos; no lo empeoramos.
			return domain.NewValidationError("parent_id", "la cadena de padres ya contiene un ciclo")
		}
		seen[current] = struct{}{}
		node, ok := tree[current]
		if !ok {
			break
		}
		current = node.ParentID
	}
	return nil
}

// ToggleActive alterna el estado activo de una organización.
func (uc *OrganizationUseCase) ToggleActive(actor *entity.User, orgID string) (*dto.OrganizationResponse, error) {
	org, err := uc.orgRepo.GetByID(orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanUpdateOrganization(actor, org) {
		return nil, domain.ErrAccessDenied
	}
	org.IsActive = !org.IsActive
	org.UpdatedAt = time.Now()
	if err := uc.orgRepo.Update(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// Delete elimina una organización.
func (uc *OrganizationUseCase) Delete(actor *entity.User, orgID string) error {
	org, err := uc.orgRepo.GetByID(orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return domain.ErrNotFound
	}
	if !authz.CanDeleteOrganization(actor, org) {
		return domain.ErrAccessDenied
	}
	return uc.orgRepo.Delete(orgID)
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	return &dto.OrganizationResponse{
		ID:         o.ID,
		Name:       o.Name,
		ParentID:   o.ParentID,
		DirectorID: o.DirectorID,
		IsActive:   o.IsActive,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
