package middleware

import (
	"context"
	"strings"

	"equipment-system/pkg/contextkeys"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/service"
	"equipment-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth извлекает company_id/user_id из Bearer-токена и кладёт их в
// контекст запроса. Все запросы ядра скоупятся по компании.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.NewHttpError(401, apperrors.ErrEmptyAuthHeader.Error(), nil, nil), m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.NewHttpError(401, apperrors.ErrInvalidAuthHeader.Error(), nil, nil), m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			return utils.ErrorResponse(c, apperrors.NewHttpError(401, apperrors.ErrInvalidToken.Error(), err, nil), m.logger)
		}

		companyID, err := uuid.Parse(claims.CompanyID)
		if err != nil || companyID == uuid.Nil {
			m.logger.Warn("AuthMiddleware: токен без company_id")
			return utils.ErrorResponse(c, apperrors.NewHttpError(401, apperrors.ErrCompanyIDNotFound.Error(), err, nil), m.logger)
		}
		userID, _ := uuid.Parse(claims.UserID)

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.CompanyIDKey, companyID)
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
