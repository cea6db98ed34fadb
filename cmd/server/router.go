package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jpcastanov/siga-api/internal/api"
	apimiddleware "github.com/jpcastanov/siga-api/internal/api/middleware"
)

// setupRouter builds the HTTP router: public auth routes plus the
// token-protected academic resources.
func (app *application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	authHandler := api.NewAuthHandler(app.userService)
	periodHandler := api.NewPeriodHandler(app.periodService)
	careerHandler := api.NewCareerHandler(app.careerService)
	curriculumHandler := api.NewCurriculumHandler(app.curriculumService)
	subjectHandler := api.NewSubjectHandler(app.subjectService)
	scheduleHandler := api.NewScheduleHandler(app.scheduleService)
	noteHandler := api.NewNoteHandler(app.noteService)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/periods", func(r chi.Router) {
				r.Post("/", periodHandler.CreatePeriod)
				r.Get("/", periodHandler.ListPeriods)
				r.Get("/{id}", periodHandler.GetPeriod)
				r.Put("/{id}", periodHandler.UpdatePeriod)
				r.Delete("/{id}", periodHandler.DeletePeriod)
			})

			r.Route("/careers", func(r chi.Router) {
				r.Post("/", careerHandler.CreateCareer)
				r.Get("/", careerHandler.ListCareers)
				r.Get("/{id}", careerHandler.GetCareer)
				r.Put("/{id}", careerHandler.UpdateCareer)
				r.Delete("/{id}", careerHandler.DeleteCareer)
			})

			r.Route("/curricula", func(r chi.Router) {
				r.Post("/", curriculumHandler.CreateCurriculum)
				r.Get("/", curriculumHandler.ListCurricula)
				r.Get("/{id}", curriculumHandler.GetCurriculum)
				r.Put("/{id}", curriculumHandler.UpdateCurriculum)
				r.Post("/{id}/subjects", curriculumHandler.AddSubject)
				r.Delete("/{id}", curriculumHandler.DeleteCurriculum)
			})

			r.Route("/subjects", func(r chi.Router) {
				r.Post("/", subjectHandler.CreateSubject)
				r.Get("/", subjectHandler.ListSubjects)
				r.Get("/{id}", subjectHandler.GetSubject)
				r.Put("/{id}", subjectHandler.UpdateSubject)
				r.Post("/{id}/enroll", subjectHandler.EnrollStudent)
				r.Delete("/{id}", subjectHandler.DeleteSubject)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Post("/", scheduleHandler.CreateSchedule)
				r.Get("/", scheduleHandler.ListSchedules)
				r.Get("/{id}", scheduleHandler.GetSchedule)
				r.Put("/{id}", scheduleHandler.UpdateSchedule)
				r.Delete("/{id}", scheduleHandler.DeleteSchedule)
			})

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", noteHandler.CreateNote)
				r.Get("/", noteHandler.ListNotes)
				r.Get("/{id}", noteHandler.GetNote)
				r.Put("/{id}", noteHandler.UpdateNote)
				r.Delete("/{id}", noteHandler.DeleteNote)
			})
		})
	})

	return r
}
