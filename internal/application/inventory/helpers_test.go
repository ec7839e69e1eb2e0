package inventory_test

import "github.com/jhoicas/Produccion-api/internal/domain/repository"

func movFilter(companyID string) repository.MovementFilter {
	return repository.MovementFilter{CompanyID: companyID}
}
