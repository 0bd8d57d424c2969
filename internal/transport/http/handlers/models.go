package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
)

// Запросы.

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type decodeRequest struct {
	Token string `json:"token"`
}

type recoverRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// updateUserRequest — частичное обновление: отсутствующее поле не трогается.
type updateUserRequest struct {
	Name    *string      `json:"name,omitempty"`
	Email   *string      `json:"email,omitempty"`
	RoleIDs *[]uuid.UUID `json:"role_ids,omitempty"`
}

type blockRequest struct {
	Reason string `json:"reason"`
}

type createRoleRequest struct {
	Name string `json:"name"`
}

type updateRoleRequest struct {
	Name string `json:"name"`
}

type assignRoleRequest struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

// Ответы.

type tokenPairResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

type accessTokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type decodeResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Roles  []string  `json:"roles"`
}

type roleResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type userResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Status    string         `json:"status"`
	Roles     []roleResponse `json:"roles"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type operationResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func tokenPairFromModel(tp *models.TokenPair, userID uuid.UUID) tokenPairResponse {
	return tokenPairResponse{
		UserID:          userID,
		AccessToken:     tp.AccessToken,
		RefreshToken:    tp.RefreshToken,
		AccessExpiresAt: tp.AccessExpiresAt,
	}
}

func roleFromModel(r models.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: r.Name}
}

func userFromModel(u *models.User) userResponse {
	roles := make([]roleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, roleFromModel(r))
	}

	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Status:    string(u.Status),
		Roles:     roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func operationFromModel(op models.Operation) operationResponse {
	return operationResponse{
		ID:        op.ID,
		Type:      op.Type,
		Details:   op.Details,
		CreatedAt: op.CreatedAt,
	}
}
