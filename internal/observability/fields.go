package observability

import (
	"fmt"

	"go.uber.org/zap"
)

// Field aliases keep call sites free of a direct zap import.

func String(key, value string) zap.Field { return zap.String(key, value) }

func Int(key string, value int) zap.Field { return zap.Int(key, value) }

func Int64(key string, value int64) zap.Field { return zap.Int64(key, value) }

func Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

func Float64(key string, value float64) zap.Field { return zap.Float64(key, value) }

func Error(err error) zap.Field { return zap.Error(err) }

func Stringer(key string, value fmt.Stringer) zap.Field { return zap.Stringer(key, value) }

func Any(key string, value interface{}) zap.Field { return zap.Any(key, value) }
