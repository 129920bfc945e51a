package db

import "gorm.io/gorm"

type Stores struct {
	Users     *UserStore
	Companies *CompanyStore
}

func NewStores(database *gorm.DB) *Stores {
	return &Stores{
		Users:     NewUserStore(database),
		Companies: NewCompanyStore(database),
	}
}
