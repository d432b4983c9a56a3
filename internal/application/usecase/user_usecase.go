package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aprovisionamiento y gestión de cuentas. Aplica las reglas de
// quién puede crear a quién: un Sales Manager solo aprovisiona Sales Agents,
// solo Admin cambia el rol de otros, y nadie cambia su propio rol.
type UserUseCase struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, orgRepo: orgRepo}
}

// Create aprovisiona un usuario nuevo. Los Referral se cuelgan de la
// organización raíz del grupo; el resto hereda la organización del actor
// salvo que un Admin/Group Director indique otra.
func (uc *UserUseCase) Create(actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !authz.CanCreateUser(actor) {
		return nil, domain.ErrAccessDenied
	}
	if !entity.IsValidRole(in.RoleName) {
		return nil, domain.NewValidationError("role_name", "rol desconocido: "+in.RoleName)
	}
	if !canProvisionRole(actor, in.RoleName) {
		return nil, domain.NewValidationError("role_name", "su rol no puede aprovisionar usuarios con rol "+in.RoleName)
	}

	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	orgID, err := uc.resolveOrganization(actor, in.RoleName, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:             uuid.New().String(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PasswordHash:   string(hash),
		OrganizationID: orgID,
		CreatedBy:      actor.ID,
		Role:           in.RoleName,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// canProvisionRole aplica la matriz de aprovisionamiento por rol del actor.
func canProvisionRole(actor *entity.User, role string) bool {
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleGroupDirector:
		return true
	case entity.RolePartnerDirector:
		// Un Partner Director puebla su organización, sin crear pares ni superiores.
		switch role {
		case entity.RoleCoordinator, entity.RoleSalesManager, entity.RoleSalesAgent, entity.RoleReferral:
			return true
		}
		return false
	case entity.RoleSalesManager:
		return role == entity.RoleSalesAgent
	default:
		return false
	}
}

// resolveOrganization decide la organización del usuario nuevo.
func (uc *UserUseCase) resolveOrganization(actor *entity.User, role, requested string) (string, error) {
	if role == entity.RoleReferral {
		root, err := uc.orgRepo.GetRoot()
		if err != nil {
			return "", err
		}
		if root == nil {
			return "", domain.ErrNotFound
		}
		return root.ID, nil
	}
	if requested == "" || !actor.HasRole(entity.RoleAdmin, entity.RoleGroupDirector) {
		return actor.OrganizationID, nil
	}
	org, err := uc.orgRepo.GetByID(requested)
	if err != nil {
		return "", err
	}
	if org == nil {
		return "", domain.ErrNotFound
	}
	return org.ID, nil
}

// Get devuelve un usuario si el actor puede verlo.
func (uc *UserUseCase) Get(actor *entity.User, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewUser(actor, user) {
		return nil, domain.ErrAccessDenied
	}
	return toUserResponse(user), nil
}

// List devuelve los usuarios visibles para el actor según su scope.
func (uc *UserUseCase) List(actor *entity.User, f repository.UserFilters) ([]*dto.UserResponse, error) {
	if !authz.CanViewAnyUsers(actor) {
		return nil, domain.ErrAccessDenied
	}
	scope := repository.ScopeFor(authz.ResolveScope(actor), actor.ID)
	users, err := uc.userRepo.List(scope, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// ListAssignable devuelve los destinatarios válidos de una asignación de lead
// para el actor: los coordinadores asignan a Sales Managers y los managers a
// Sales Agents de su propia organización. Admin y Group Director ven ambos.
func (uc *UserUseCase) ListAssignable(actor *entity.User) ([]*dto.UserResponse, error) {
	var users []*entity.User
	var err error

	switch actor.Role {
	case entity.RoleAdmin, entity.RoleGroupDirector:
		managers, merr := uc.userRepo.ListByRole(entity.RoleSalesManager, "")
		if merr != nil {
			return nil, merr
		}
		agents, aerr := uc.userRepo.ListByRole(entity.RoleSalesAgent, "")
		if aerr != nil {
			return nil, aerr
		}
		users = append(managers, agents...)
	case entity.RoleCoordinator:
		users, err = uc.userRepo.ListByRole(entity.RoleSalesManager, "")
	case entity.RoleSalesManager:
		users, err = uc.userRepo.ListByRole(entity.RoleSalesAgent, actor.OrganizationID)
	default:
		return nil, domain.ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Update modifica un usuario. Cambiar el rol de otro exige Admin; cambiar el
// propio rol está prohibido para todos.
func (uc *UserUseCase) Update(actor *entity.User, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanUpdateUser(actor, user) {
		return nil, domain.ErrAccessDenied
	}

	if in.RoleName != nil && *in.RoleName != user.Role {
		if actor.ID == user.ID {
			return nil, domain.NewValidationError("role_name", "no puede cambiar su propio rol")
		}
		if actor.Role != entity.RoleAdmin {
			return nil, domain.NewValidationError("role_name", "solo un Admin puede cambiar el rol de otro usuario")
		}
		if !entity.IsValidRole(*in.RoleName) {
			return nil, domain.NewValidationError("role_name", "rol desconocido: "+*in.RoleName)
		}
		user.Role = *in.RoleName
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil && *in.Email != user.Email {
		existing, err := uc.userRepo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.OrganizationID != nil && actor.HasRole(entity.RoleAdmin, entity.RoleGroupDirector) {
		user.OrganizationID = *in.OrganizationID
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ToggleActive activa o desactiva una cuenta. Nadie se desactiva a sí mismo.
func (uc *UserUseCase) ToggleActive(actor *entity.User, userID string) (*dto.UserResponse, error) {
	if actor.ID == userID {
		return nil, domain.NewValidationError("id", "no puede desactivar su propia cuenta")
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanUpdateUser(actor, user) {
		return nil, domain.ErrAccessDenied
	}
	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina una cuenta. Nadie se borra a sí mismo.
func (uc *UserUseCase) Delete(actor *entity.User, userID string) error {
	if actor.ID == userID {
		return domain.NewValidationError("id", "no puede eliminar su propia cuenta")
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if !authz.CanDeleteUser(actor, user) {
		return domain.ErrAccessDenied
	}
	return uc.userRepo.Delete(userID)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		OrganizationID: u.OrganizationID,
		Role:           u.Role,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
