package handlers

import (
	"reflect"
	"regexp"
	"strings"
	"tourguide/internal/config"
	"tourguide/internal/service"

	"github.com/go-playground/validator/v10"
)

var tagNamePattern = regexp.MustCompile(`^[\w\s-]+$`)

type Handlers struct {
	AuthService     service.AuthService
	UserService     service.UserService
	CategoryService service.CategoryService
	TagService      service.TagService
	PostService     service.PostService
	ImageService    service.ImageService
	HealthService   service.HealthService
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:     service.Auth,
		UserService:     service.User,
		CategoryService: service.Category,
		TagService:      service.Tag,
		PostService:     service.Post,
		ImageService:    service.Image,
		HealthService:   service.Health,
		Cfg:             config,
		Validate:        NewValidator(),
	}
}

// NewValidator reports fields by their json names and knows the tagname and
// id rules. id accepts whatever uuid.Parse accepts, like path ids do.
func NewValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = validate.RegisterValidation("tagname", func(fl validator.FieldLevel) bool {
		return tagNamePattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("id", func(fl validator.FieldLevel) bool {
		_, ok := parseID(fl.Field().String())
		return ok
	})

	return validate
}
