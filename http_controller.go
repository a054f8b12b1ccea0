package hobbies

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

// UserController serves the user and hobby endpoints
type UserController struct {
	Debug  bool
	Logger Logger
	Repo   RepositoryManager
	Auth   *Authenticator
	Auther *RouteAuthenticator
	Photos PhotoStore
	cfg    Config
}

type UserControllerOption func(*UserController) *UserController

func NewUserController(opts ...UserControllerOption) *UserController {
	c := &UserController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in user controller...")
	}

	if c.Auth == nil {
		panic("Missing Authenticator in user controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in user controller...")
	}

	if c.cfg == nil {
		panic("Missing Config in user controller...")
	}

	return c
}

func WithControllerRepo(repo RepositoryManager) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Repo = repo
		return c
	}
}

func WithControllerAuth(auth *Authenticator, auther *RouteAuthenticator) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Auth = auth
		c.Auther = auther
		return c
	}
}

func WithControllerPhotos(store PhotoStore) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Photos = store
		return c
	}
}

func WithControllerConfig(cfg Config) UserControllerOption {
	return func(c *UserController) *UserController {
		c.cfg = cfg
		return c
	}
}

func WithControllerLogger(l Logger) UserControllerOption {
	return func(c *UserController) *UserController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

func WithControllerDebug(debug bool) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Debug = debug
		return c
	}
}

// RegisterRoutes mounts the API surface under the given router
func (a *UserController) RegisterRoutes(api fiber.Router) {
	authed := a.Auther.ProtectedRoute()
	admin := a.Auther.ProtectedRoute(RoleAdmin)

	api.Post("/create-user", a.Store)
	api.Post("/login", a.Login)

	api.Put("/update-user/:id", admin, a.Update)
	api.Patch("/update-user/:id", admin, a.Update)
	api.Delete("/delete-user/:id", admin, a.Destroy)
	api.Get("/users", admin, a.Index)

	api.Post("/logout", authed, a.Logout)
	api.Post("/add-hobbies", authed, a.AddHobbies)
	api.Get("/users-by-hobby", authed, a.UsersByHobby)
	api.Post("/users-by-hobby", authed, a.UsersByHobby)
}

// CreateUserPayload is the registration payload
type CreateUserPayload struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	Phone     string `form:"phone_number" json:"phone_number"`
}

// Validate will run validation rules
func (r CreateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.Phone, validation.Required, PhoneNumber),
	)
}

func (a *UserController) Store(c *fiber.Ctx) error {
	payload := new(CreateUserPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("create user parse payload", "error", err)
		return WriteError(c, ErrInvalidArgument)
	}

	if err := payload.Validate(); err != nil {
		return a.validationError(c, err)
	}

	if a.Debug {
		fmt.Println("======= CREATE USER ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("==========================")
	}

	ctx := c.UserContext()

	if taken, err := a.Repo.Users().EmailInUse(ctx, payload.Email, uuid.Nil); err != nil {
		return a.internalError(c, "create user email lookup", err)
	} else if taken {
		return WriteError(c, validationFailure("The email has already been taken."))
	}

	if taken, err := a.Repo.Users().PhoneInUse(ctx, payload.Phone, uuid.Nil); err != nil {
		return a.internalError(c, "create user phone lookup", err)
	} else if taken {
		return WriteError(c, validationFailure("The phone number has already been taken."))
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return a.internalError(c, "create user password hash", err)
	}

	user := &User{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		PasswordHash: hash,
	}

	if photo, perr := c.FormFile("user_photo"); perr == nil && photo != nil {
		name, serr := a.Photos.Save(c, photo)
		if serr != nil {
			return a.photoError(c, serr)
		}
		user.Photo = name
	}

	if _, err := a.Repo.Users().Register(c.UserContext(), user); err != nil {
		return a.internalError(c, "create user persist", err)
	}

	return c.Status(fiber.StatusOK).JSON(
		SuccessEnvelope(fiber.StatusOK, "User Created Sucessfully", nil),
	)
}

// UpdateUserPayload carries the updatable profile fields. Only the phone and
// photo are re-validated on update.
type UpdateUserPayload struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Phone     string `form:"phone_number" json:"phone_number"`
}

// Validate will run validation rules
func (r UpdateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, PhoneNumber),
	)
}

func (a *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return WriteError(c, ErrModelNotFound)
	}

	payload := new(UpdateUserPayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("update user parse payload", "error", err)
		return WriteError(c, ErrInvalidArgument)
	}

	if err := payload.Validate(); err != nil {
		return a.validationError(c, err)
	}

	ctx := c.UserContext()

	user, err := a.Repo.Users().GetByID(ctx, id.String())
	if err != nil {
		if errors.IsNotFound(err) {
			return WriteError(c, ErrModelNotFound)
		}
		return a.internalError(c, "update user lookup", err)
	}

	if payload.Phone != "" {
		if taken, err := a.Repo.Users().PhoneInUse(ctx, payload.Phone, id); err != nil {
			return a.internalError(c, "update user phone lookup", err)
		} else if taken {
			return WriteError(c, validationFailure("The phone number has already been taken."))
		}
		user.Phone = payload.Phone
	}

	if payload.FirstName != "" {
		user.FirstName = payload.FirstName
	}
	if payload.LastName != "" {
		user.LastName = payload.LastName
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}

	if photo, perr := c.FormFile("user_photo"); perr == nil && photo != nil {
		name, serr := a.Photos.Save(c, photo)
		if serr != nil {
			return a.photoError(c, serr)
		}
		user.Photo = name
	}

	if _, err := a.Repo.Users().Update(ctx, user); err != nil {
		return a.internalError(c, "update user persist", err)
	}

	return c.Status(fiber.StatusOK).JSON(
		SuccessEnvelope(fiber.StatusOK, "User Updated Sucessfully", nil),
	)
}

func (a *UserController) Destroy(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return WriteError(c, ErrModelNotFound)
	}

	if err := a.Repo.Users().SoftDelete(c.UserContext(), id); err != nil {
		if errors.IsNotFound(err) {
			return WriteError(c, ErrModelNotFound)
		}
		return a.internalError(c, "delete user", err)
	}

	return c.Status(fiber.StatusOK).JSON(
		SuccessEnvelope(fiber.StatusOK, "User Deleted Sucessfully", nil),
	)
}

// LoginPayload is the login payload
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *UserController) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return WriteError(c, ErrInvalidArgument)
	}

	if err := payload.Validate(); err != nil {
		return a.validationError(c, err)
	}

	ctx := c.UserContext()

	token, err := a.Auth.Login(ctx, payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("login failed", "error", err)
		if _, ok := AsRichError(err); ok {
			return WriteError(c, err)
		}
		return WriteError(c, ErrInvalidCredentials)
	}

	user, err := a.Repo.Users().GetByIdentifier(ctx, payload.Email)
	if err != nil {
		return a.internalError(c, "login user lookup", err)
	}

	data := user.AsData()
	data["token"] = token

	return c.Status(fiber.StatusOK).JSON(
		SuccessEnvelope(fiber.StatusOK, "User login successfully", data),
	)
}

func (a *UserController) Logout(c *fiber.Ctx) error {
	raw, err := a.rawToken(c)
	if err != nil {
		return WriteError(c, ErrLogoutFailed)
	}

	if err := a.Auth.Invalidate(c.UserContext(), raw); err != nil {
		a.Logger.Error("logout failed", "error", err)
		return WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(
		SuccessEnvelope(fiber.StatusOK, "User has been logged out", nil),
	)
}

// AddHobbiesPayload carries the hobby ids to associate
type AddHobbiesPayload struct {
	Hobbies []string `form:"hobbies" json:"hobbies"`
}

// Validate will run validation rules
func (r AddHobbiesPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Hobbies, validation.Required),
	)
}

func (a *UserController) AddHobbies(c *fiber.Ctx) error {
	payload := new(AddHobbiesPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("add hobbies parse payload", "error", err)
		return WriteError(c, ErrInvalidArgument)
	}

	if err := payload.Validate(); err != nil {
		return a.validationError(c, err)
	}

	claims, ok := ClaimsFromCtx(c, a.cfg.GetContextKey())
	if !ok {
		return WriteError(c, ErrInvalidUser)
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return WriteError(c, ErrInvalidUser)
	}

	ids := make([]uuid.UUID, 0, len(payload.Hobbies))
	for _, raw := range payload.Hobbies {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return WriteError(c, validationFailure("hobbies: must contain valid hobby ids"))
		}
		ids = append(ids, id)
	}

	ctx := c.UserContext()

	known, err := a.Repo.Hobbies().FilterExistingIDs(ctx, ids)
	if err != nil {
		return a.internalError(c, "add hobbies lookup", err)
	}

	if len(known) != len(ids) {
		return WriteError(c, validationFailure("hobbies: contains unknown hobby ids"))
	}

	// additive sync, existing associations survive
	if err := a.Repo.Users().SyncHobbies(ctx, userID, known, false); err != nil {
		return a.internalError(c, "add hobbies sync", err)
	}

	return c.Status(fiber.StatusOK).JSON(
		SuccessEnvelope(fiber.StatusOK, "User hobbies has been updated", nil),
	)
}

// UsersByHobbyPayload carries a hobby name fragment to look up
type UsersByHobbyPayload struct {
	Hobbies string `form:"hobbies" json:"hobbies" query:"hobbies"`
}

// Validate will run validation rules
func (r UsersByHobbyPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Hobbies, validation.Required),
	)
}

func (a *UserController) UsersByHobby(c *fiber.Ctx) error {
	payload := new(UsersByHobbyPayload)

	if c.Method() == fiber.MethodGet {
		payload.Hobbies = c.Query("hobbies")
	} else if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("users by hobby parse payload", "error", err)
		return WriteError(c, ErrInvalidArgument)
	}

	if err := payload.Validate(); err != nil {
		return a.validationError(c, err)
	}

	users, err := a.Repo.Users().ListByHobby(c.UserContext(), payload.Hobbies)
	if err != nil {
		return a.internalError(c, "users by hobby lookup", err)
	}

	data := make([]map[string]any, 0, len(users))
	for _, user := range users {
		data = append(data, user.AsData())
	}

	return c.Status(fiber.StatusOK).JSON(
		SuccessEnvelope(fiber.StatusOK, "Users listing", data),
	)
}

func (a *UserController) Index(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("perPage", 10)

	result, err := a.Repo.Users().ListPage(c.UserContext(), page, perPage)
	if err != nil {
		return a.internalError(c, "list users", err)
	}

	result.Path = c.Path()

	return c.Status(fiber.StatusOK).JSON(
		SuccessWithPagination(fiber.StatusOK, "", result, nil),
	)
}

func (a *UserController) rawToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	scheme := a.cfg.GetAuthScheme()

	if len(header) > len(scheme)+1 && strings.EqualFold(header[:len(scheme)], scheme) {
		return strings.TrimSpace(header[len(scheme):]), nil
	}

	return "", ErrInvalidArgument
}

func (a *UserController) validationError(c *fiber.Ctx, err error) error {
	return WriteError(c, validationFailure(firstValidationMessage(err)))
}

func (a *UserController) photoError(c *fiber.Ctx, err error) error {
	if richErr, ok := AsRichError(err); ok && richErr.Category == errors.CategoryValidation {
		return WriteError(c, err)
	}
	return a.internalError(c, "photo upload", err)
}

func (a *UserController) internalError(c *fiber.Ctx, op string, err error) error {
	a.Logger.Error(op, "error", err)
	return WriteError(c, errors.Wrap(err, errors.CategoryInternal, "Internal server error").
		WithCode(fiber.StatusInternalServerError))
}

// validationFailure wraps a message as a 422 validation error
func validationFailure(message string) error {
	return errors.New(message, errors.CategoryValidation).
		WithTextCode("VALIDATION_FAILED").
		WithCode(fiber.StatusUnprocessableEntity)
}
