//go:generate mockgen -source=../catalog.go         -destination=./mock_catalog.go         -package=mocks
//go:generate mockgen -source=../product_cache.go   -destination=./mock_product_cache.go   -package=mocks
//go:generate mockgen -source=../cart_storage.go    -destination=./mock_cart_storage.go    -package=mocks
//go:generate mockgen -source=../notifier.go        -destination=./mock_notifier.go        -package=mocks
//go:generate mockgen -source=../validator.go       -destination=./mock_validator.go       -package=mocks
//go:generate mockgen -source=../runtime.go -destination=./mock_runtime.go -package=mocks
//go:generate mockgen -source=../cart_service.go    -destination=mock_cart_service.go      -package=mocks

package mocks
