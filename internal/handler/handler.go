package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/blueline-dev/patrol-roster/backend/internal/config"
	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
	"github.com/blueline-dev/patrol-roster/backend/internal/repository"
	"github.com/blueline-dev/patrol-roster/backend/internal/roster"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	engine        *roster.Engine
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, engine *roster.Engine, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		engine:        engine,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.myInfo).Get("/my-info", h.GetMyInfo)

		r.Route("/officers", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Post("/", h.CreateOfficer)
			r.Get("/", h.GetAllOfficers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.officerInfo)
				r.Get("/", h.GetOfficer)
				r.With(h.preventOperateInitialSupervisor).With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Patch("/", h.UpdateOfficer)
				r.With(h.preventOperateInitialSupervisor).With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Delete("/", h.DeleteOfficer)
				r.Get("/leave-balances", h.GetOfficerLeaveBalances)
			})
		})

		r.Route("/shift-types", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Post("/", h.CreateShiftType)
			r.Get("/", h.GetAllShiftTypes)
			r.Get("/{id}", h.GetShiftType)
		})

		r.Route("/recurring-assignments", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Post("/", h.CreateRecurringAssignment)
			r.Get("/", h.ListRecurringAssignments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.recurringAssignment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Patch("/close", h.CloseRecurringAssignment)
			})
		})

		r.Route("/exceptions", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Post("/", h.CreateScheduleException)
			r.Get("/", h.ListScheduleExceptions)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.scheduleException)
				r.Get("/", h.GetScheduleException)
				r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Patch("/", h.UpdateScheduleException)
				r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor})).Delete("/", h.DeleteScheduleException)
			})
		})

		r.Get("/schedule", h.GetSchedule)
	})
}
