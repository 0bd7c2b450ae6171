package observed

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	CallMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
