package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// CompanyRepo implementa repository.CompanyRepository.
type CompanyRepo struct{ v view }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.companies[c.ID]; ok {
			return domain.ErrDuplicate
		}
		d.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.read(func(d *dataset) error {
		if c, ok := d.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// UserRepo implementa repository.UserRepository. El login es único sin distinguir mayúsculas.
type UserRepo struct{ v view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(d *dataset) error {
		for _, existing := range d.users {
			if strings.EqualFold(existing.Login, u.Login) {
				return domain.ErrDuplicate
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(d *dataset) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Login, login) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
