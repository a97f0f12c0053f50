package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	_, err := s.users.Register(ctx, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return fail(c, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, common.ErrorAlreadyExists):
			return fail(c, http.StatusConflict, "User already exists with this email")
		default:
			s.logger.Error(ctx, "registration failed", "err", err.Error())
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	s.logger.Info(ctx, "user registered", "email", req.Email)
	return ok(c, http.StatusCreated, "User registered successfully", nil)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return fail(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, common.ErrorUnauthorized):
			// Unknown email and wrong password answer identically.
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		default:
			s.logger.Error(ctx, "login failed", "err", err.Error())
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return ok(c, http.StatusOK, "Login successful", echo.Map{"token": token})
}

func (s *Server) getProfile(c echo.Context) error {
	ctx := c.Request().Context()
	profile, err := s.users.GetProfile(ctx, userID(c))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		s.logger.Error(ctx, "get profile failed", "err", err.Error())
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return ok(c, http.StatusOK, "Profile retrieved successfully", echo.Map{"user": profile})
}

func (s *Server) updateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	profile, err := s.users.UpdateProfile(ctx, userID(c), req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return fail(c, http.StatusBadRequest, "First name and last name are required")
		case errors.Is(err, common.ErrorNotFound):
			return fail(c, http.StatusNotFound, "User not found")
		default:
			s.logger.Error(ctx, "update profile failed", "err", err.Error())
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return ok(c, http.StatusOK, "Profile updated successfully", echo.Map{"user": profile})
}

func (s *Server) updateProfilePic(c echo.Context) error {
	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Profile picture is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "Profile picture is required")
	}
	defer file.Close()

	ctx := c.Request().Context()
	profile, err := s.users.UpdateProfilePicture(ctx, userID(c), file)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return fail(c, http.StatusBadRequest, "Profile picture is required")
		case errors.Is(err, common.ErrorNotFound):
			return fail(c, http.StatusNotFound, "User not found")
		default:
			s.logger.Error(ctx, "update profile picture failed", "err", err.Error())
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return ok(c, http.StatusOK, "Profile picture updated successfully", echo.Map{"user": profile})
}

func (s *Server) updatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	err := s.users.UpdatePassword(ctx, userID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return fail(c, http.StatusBadRequest, validationMessage(err))
		case errors.Is(err, common.ErrorUnauthorized):
			return fail(c, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, common.ErrorNotFound):
			return fail(c, http.StatusNotFound, "User not found")
		default:
			s.logger.Error(ctx, "update password failed", "err", err.Error())
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return ok(c, http.StatusOK, "Password updated successfully", nil)
}
