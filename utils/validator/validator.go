package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// FirstFieldError renders the first failing field as "<Field> failed <tag>".
func FirstFieldError(err error) string {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	fe := verrs[0]
	return fe.Namespace() + " failed " + fe.Tag()
}
