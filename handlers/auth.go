package handlers

import (
	"github.com/biosecret/taskmanager/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	User        models.Profile `json:"user"`
}

// RegisterHandler đăng ký người dùng mới
//
//	@Summary	Register a new user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		registerRequest	true	"User"
//	@Success	201		{object}	messageResponse
//	@Failure	400		{object}	messageResponse
//	@Router		/api/auth/register [post]
func (h *Handler) RegisterHandler(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}

	user, err := h.Auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.Log.Info("user registered", zap.String("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(messageResponse{Message: "user created successfully"})
}

// LoginHandler kiểm tra thông tin đăng nhập và trả về access token
//
//	@Summary	Log in and obtain an access token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		loginRequest	true	"Credentials"
//	@Success	200		{object}	loginResponse
//	@Failure	400		{object}	messageResponse
//	@Failure	401		{object}	messageResponse
//	@Router		/api/auth/login [post]
func (h *Handler) LoginHandler(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}

	token, user, err := h.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(loginResponse{
		AccessToken: token,
		User:        user.Profile(),
	})
}
