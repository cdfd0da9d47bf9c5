// transport/http содержит HTTP-эндпоинты auth-бэкенда.
// Здесь выполняется только разбор/валидация тел запросов и маппинг
// ошибок доменного слоя (service) в HTTP-статусы. Бизнес-логика
// находится в пакете service.
//
// Принципы:
//   - Контекст запроса прокидывается в сервис без потерь;
//   - Ошибки сервиса явно транслируются в статусы:
//   - ErrInvalidEmail/ErrWeakPassword/ErrEmptyPassword -> 400;
//   - ErrEmailTaken -> 400 с обобщённым "registration failed"
//     (существование email не подтверждается и не опровергается);
//   - ErrInvalidCredentials -> 401, одинаковый ответ для
//     неизвестного email и неверного пароля;
//   - иные ошибки -> 500 c единым безопасным сообщением.
//
// Безопасность:
//   - Наружу не утекают детали внутренних ошибок и тем более хэши;
//     подробности попадают в логи через middleware.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"auth-backend/internal/pkg/log"
	"auth-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	service *service.Service
}

// NewServer создаёт HTTP-сервер авторизации поверх сервисного слоя.
func NewServer(service *service.Service) *Server {
	return &Server{service: service}
}

// NewRouter собирает chi-маршрутизатор с middleware и эндпоинтами.
func NewRouter(svc *service.Service, logger *slog.Logger, timeout time.Duration) http.Handler {
	s := NewServer(svc)

	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Use(Recover(logger))
	r.Use(WithTimeout(timeout))

	r.Post("/register", s.RegisterUser)
	r.Post("/login", s.LoginUser)
	r.Get("/healthz", s.HealthCheck)

	return r
}

// credentialsRequest — тело запросов /register и /login.
// Неизвестные поля отклоняются на этапе декодирования.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// decodeCredentials разбирает и проверяет тело запроса.
// Возвращает false, если ответ клиенту уже записан.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return req, false
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, r, http.StatusBadRequest, "email and password are required")
		return req, false
	}

	return req, true
}

// RegisterUser регистрирует пользователя.
// Маппинг ошибок:
//   - ErrInvalidEmail/ErrWeakPassword/ErrEmptyPassword -> 400;
//   - ErrEmailTaken -> 400 "registration failed" (без раскрытия причины);
//   - прочее -> 500.
func (s *Server) RegisterUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := s.service.RegisterUser(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(w, r, http.StatusBadRequest, "invalid email format")
		case errors.Is(err, service.ErrWeakPassword), errors.Is(err, service.ErrEmptyPassword):
			respondError(w, r, http.StatusBadRequest, "password does not meet the minimum requirements")
		case errors.Is(err, service.ErrEmailTaken):
			respondError(w, r, http.StatusBadRequest, "registration failed")
		default:
			respondInternal(w, r, err)
		}

		return
	}

	respondJSON(w, r, http.StatusCreated, map[string]string{
		"id":    user.ID.String(),
		"email": user.Email,
	})
}

// LoginUser аутентифицирует пользователя.
// Маппинг ошибок:
//   - ErrInvalidCredentials -> 401 с единым сообщением;
//   - прочее -> 500.
func (s *Server) LoginUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if _, err := s.service.LoginUser(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, r, http.StatusUnauthorized, "invalid email or password")
			return
		}

		respondInternal(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// HealthCheck — liveness-проба: без состояния и без похода в БД.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "auth backend is awake",
	})
}

// respondJSON отправляет JSON-ответ клиенту.
func respondJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.From(r.Context()).Error("response_marshal_failed", "err", err.Error())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		log.From(r.Context()).Error("response_write_failed", "err", err.Error())
	}
}

// respondError отправляет JSON-ответ с ошибкой.
func respondError(w http.ResponseWriter, r *http.Request, code int, message string) {
	respondJSON(w, r, code, map[string]string{"error": message})
}

// respondInternal логирует исходную ошибку и отвечает нейтральным 500.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	log.From(r.Context()).Error("internal_error", "err", err.Error())
	respondError(w, r, http.StatusInternalServerError, "internal server error")
}
