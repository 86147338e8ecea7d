package inmemdb

import (
	"github.com/coursely/coursely/core/payment"
)

type checkoutRepository struct {
	db *checkoutTable
}

var _ payment.Repository = (*checkoutRepository)(nil) // interface compliance check

func NewCheckoutRepository(db *DB) payment.Repository {
	return &checkoutRepository{db: db.checkout}
}

func (repo *checkoutRepository) CreateCheckout(co payment.Checkout) (payment.Checkout, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[co.ID] = &co
	return co, nil
}

func (repo *checkoutRepository) GetCheckoutByID(id string) (payment.Checkout, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if co, ok := repo.db.table[id]; ok {
		return *co, nil
	}
	return payment.Checkout{}, payment.ErrCheckoutNotFound
}

func (repo *checkoutRepository) UpdateCheckout(co payment.Checkout) (payment.Checkout, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[co.ID]; !ok {
		return payment.Checkout{}, payment.ErrCheckoutNotFound
	}
	repo.db.table[co.ID] = &co
	return co, nil
}
