package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products    ProductRepository
	Stores      StoreRepository
	Prices      PriceRepository
	Validations ValidationRepository
	Users       UserRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
