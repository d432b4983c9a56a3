package usecase_test

import (
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

// Fakes en memoria compartidos por los tests del paquete.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(us ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id string) error { delete(r.users, id); return nil }

func (r *fakeUserRepo) List(_ repository.ScopeFilter, _ repository.UserFilters) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(role, orgID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role && u.IsActive && (orgID == "" || u.OrganizationID == orgID) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeOrgRepo struct {
	orgs map[string]*entity.Organization
}

func newFakeOrgRepo(os ...*entity.Organization) *fakeOrgRepo {
	r := &fakeOrgRepo{orgs: map[string]*entity.Organization{}}
	for _, o := range os {
		r.orgs[o.ID] = o
	}
	return r
}

func (r *fakeOrgRepo) Create(o *entity.Organization) error {
	cp := *o
	r.orgs[o.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) GetByID(id string) (*entity.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrgRepo) GetRoot() (*entity.Organization, error) {
	for _, o := range r.orgs {
		if o.ParentID == "" {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrgRepo) Update(o *entity.Organization) error {
	cp := *o
	r.orgs[o.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) Delete(id string) error { delete(r.orgs, id); return nil }

func (r *fakeOrgRepo) List(_ repository.ScopeFilter, _, _ int) ([]*entity.Organization, error) {
	var out []*entity.Organization
	for _, o := range r.orgs {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrgRepo) GetTree() (map[string]*entity.Organization, error) {
	tree := make(map[string]*entity.Organization, len(r.orgs))
	for id, o := range r.orgs {
		cp := *o
		tree[id] = &cp
	}
	return tree, nil
}

type fakeTeamRepo struct {
	teams map[string]*entity.Team
	users *fakeUserRepo
}

func newFakeTeamRepo(users *fakeUserRepo, ts ...*entity.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: map[string]*entity.Team{}, users: users}
	for _, t := range ts {
		r.teams[t.ID] = t
	}
	return r
}

func (r *fakeTeamRepo) Create(t *entity.Team) error {
	cp := *t
	r.teams[t.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) GetByID(id string) (*entity.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.MemberIDs = append([]string(nil), t.MemberIDs...)
	return &cp, nil
}

func (r *fakeTeamRepo) Update(t *entity.Team) error {
	cp := *t
	r.teams[t.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) Delete(id string) error { delete(r.teams, id); return nil }

func (r *fakeTeamRepo) List(_ repository.ScopeFilter, _ repository.TeamFilters) ([]*entity.Team, error) {
	var out []*entity.Team
	for _, t := range r.teams {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTeamRepo) SlugExists(orgID, slug, excludeTeamID string) (bool, error) {
	for _, t := range r.teams {
		if t.ID != excludeTeamID && t.OrganizationID == orgID && t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) AddMember(teamID, userID string) error {
	t := r.teams[teamID]
	t.MemberIDs = append(t.MemberIDs, userID)
	return nil
}

func (r *fakeTeamRepo) RemoveMember(teamID, userID string) error {
	t := r.teams[teamID]
	for i, id := range t.MemberIDs {
		if id == userID {
			t.MemberIDs = append(t.MemberIDs[:i], t.MemberIDs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTeamRepo) ListMembers(teamID string) ([]*entity.User, error) {
	t, ok := r.teams[teamID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	var out []*entity.User
	for _, id := range t.MemberIDs {
		if u, _ := r.users.GetByID(id); u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) ListForUser(userID string) ([]*entity.Team, error) {
	var out []*entity.Team
	for _, t := range r.teams {
		if t.CreatorID == userID || t.HasMember(userID) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}
