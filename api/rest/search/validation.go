package search

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"codeberg.org/showcase/server/internal/capability"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// installs the capability tag on gin's validator and reports fields by their JSON name
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		v.RegisterTagNameFunc(jsonFieldName)

		if err := capability.RegisterValidation(v); err != nil {
			registerErr = fmt.Errorf("failed to register capability validation: %w", err)
		}
	})

	return registerErr
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return f.Name
	}

	return name
}
