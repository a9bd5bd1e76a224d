package http

import (
	"net/http"

	"gait-analysis-backend/internal/delivery/http/handler"
	"gait-analysis-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	doctorHandler     *handler.DoctorHandler
	patientHandler    *handler.PatientHandler
	videoHandler      *handler.VideoHandler
	actionHandler     *handler.ActionHandler
	dashboardHandler  *handler.DashboardHandler
	tableHandler      *handler.TableHandler
	managementHandler *handler.ManagementHandler
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	videoHandler *handler.VideoHandler,
	actionHandler *handler.ActionHandler,
	dashboardHandler *handler.DashboardHandler,
	tableHandler *handler.TableHandler,
	managementHandler *handler.ManagementHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		doctorHandler:     doctorHandler,
		patientHandler:    patientHandler,
		videoHandler:      videoHandler,
		actionHandler:     actionHandler,
		dashboardHandler:  dashboardHandler,
		tableHandler:      tableHandler,
		managementHandler: managementHandler,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctor routes
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.HandleFunc("/register", r.doctorHandler.Register).Methods(http.MethodPost)
	doctors.HandleFunc("/login", r.doctorHandler.Login).Methods(http.MethodPost)
	doctors.HandleFunc("/get_all_doctors", r.doctorHandler.GetAll).Methods(http.MethodGet)
	doctors.HandleFunc("/get_doctor_by_id/{doctor_id}", r.doctorHandler.GetByID).Methods(http.MethodGet)
	doctors.HandleFunc("/get_doctor_by_name/{name}", r.doctorHandler.GetByName).Methods(http.MethodGet)
	doctors.HandleFunc("/update_doctor_by_id", r.doctorHandler.Update).Methods(http.MethodPut)
	doctors.HandleFunc("/delete_doctor_by_id/{doctor_id}", r.doctorHandler.Delete).Methods(http.MethodDelete)

	// Patient routes
	patients := api.PathPrefix("/patients").Subrouter()
	patients.HandleFunc("/patient_login", r.patientHandler.Login).Methods(http.MethodPost)
	patients.HandleFunc("/insert_patient", r.patientHandler.Insert).Methods(http.MethodPut)
	patients.HandleFunc("/get_all_patient_by_doctor_id/{doctor_id}", r.patientHandler.GetAllByDoctor).Methods(http.MethodGet)
	patients.HandleFunc("/update_patient_by_id", r.patientHandler.Update).Methods(http.MethodPut)
	patients.HandleFunc("/delete_patient_by_id/{patient_id}/{doctor_id}", r.patientHandler.Delete).Methods(http.MethodDelete)
	patients.HandleFunc("/get_patients_with_page", r.patientHandler.GetPage).Methods(http.MethodGet)

	// Video routes
	videos := api.PathPrefix("/videos").Subrouter()
	videos.HandleFunc("/upload/{patient_id}", r.videoHandler.Upload).Methods(http.MethodPost)
	videos.HandleFunc("/delete_video", r.videoHandler.Delete).Methods(http.MethodDelete)
	videos.HandleFunc("/video/{video_type}/{patient_id}/{video_id}", r.videoHandler.Download).Methods(http.MethodGet)
	videos.HandleFunc("/stream/{video_type}/{patient_id}/{video_id}", r.videoHandler.Stream).Methods(http.MethodGet)
	videos.HandleFunc("/thumbnail_image/{video_type}/{patient_id}/{video_id}", r.videoHandler.Thumbnail).Methods(http.MethodGet)
	videos.HandleFunc("/get_videos/{patient_id}", r.videoHandler.GetByPatient).Methods(http.MethodGet)
	videos.HandleFunc("/get_video_by_id/{video_id}", r.videoHandler.GetByID).Methods(http.MethodGet)
	videos.HandleFunc("/get_inference_video_by_original_id/{original_video_id}", r.videoHandler.GetInferenceByOriginal).Methods(http.MethodGet)
	videos.HandleFunc("/insert_inference_video/{action_id}", r.videoHandler.InsertInference).Methods(http.MethodPost)

	// Action routes
	actions := api.PathPrefix("/actions").Subrouter()
	actions.HandleFunc("/", r.actionHandler.Create).Methods(http.MethodPost)
	actions.HandleFunc("/get_actions/{patient_id}", r.actionHandler.GetByPatient).Methods(http.MethodGet)
	actions.HandleFunc("/get_action_by_id/{action_id}", r.actionHandler.GetByID).Methods(http.MethodGet)
	actions.HandleFunc("/get_action_by_parent_id/{parent_id}", r.actionHandler.GetByParent).Methods(http.MethodGet)
	actions.HandleFunc("/delete_action/{action_id}", r.actionHandler.Delete).Methods(http.MethodDelete)
	actions.HandleFunc("/update_action", r.actionHandler.UpdateData).Methods(http.MethodPut)
	actions.HandleFunc("/update_action_status", r.actionHandler.UpdateStatus).Methods(http.MethodPost)
	actions.HandleFunc("/update_action_progress", r.actionHandler.UpdateProgress).Methods(http.MethodPost)

	// Dashboard routes. The raw variant must register before the chart
	// variant so {metric}/raw/{action_id} does not match {metric}/{action_id}.
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.HandleFunc("/{metric}/raw/{action_id}", r.dashboardHandler.Raw).Methods(http.MethodGet)
	dashboard.HandleFunc("/{metric}/{action_id}", r.dashboardHandler.Chart).Methods(http.MethodGet)

	// Table routes
	table := api.PathPrefix("/table").Subrouter()
	table.HandleFunc("/{metric}/{action_id}", r.tableHandler.Stats).Methods(http.MethodGet)

	// Management routes (admin console)
	management := api.PathPrefix("/management").Subrouter()
	management.HandleFunc("/login", r.managementHandler.Login).Methods(http.MethodPost)
	management.HandleFunc("/doctors", r.managementHandler.ListDoctors).Methods(http.MethodGet)
	management.HandleFunc("/doctor", r.managementHandler.GetDoctor).Methods(http.MethodGet)
	management.HandleFunc("/doctor", r.managementHandler.CreateDoctor).Methods(http.MethodPost)
	management.HandleFunc("/doctor", r.managementHandler.UpdateDoctor).Methods(http.MethodPut)
	management.HandleFunc("/doctor", r.managementHandler.DeleteDoctor).Methods(http.MethodDelete)
	management.HandleFunc("/patients", r.managementHandler.ListPatients).Methods(http.MethodGet)
	management.HandleFunc("/patient", r.managementHandler.GetPatient).Methods(http.MethodGet)
	management.HandleFunc("/patient", r.managementHandler.CreatePatient).Methods(http.MethodPost)
	management.HandleFunc("/patient", r.managementHandler.UpdatePatient).Methods(http.MethodPut)
	management.HandleFunc("/patient", r.managementHandler.DeletePatient).Methods(http.MethodDelete)
	management.HandleFunc("/actions", r.managementHandler.ListActions).Methods(http.MethodGet)
	management.HandleFunc("/videos", r.managementHandler.ListVideos).Methods(http.MethodGet)
	management.HandleFunc("/video", r.managementHandler.DeleteVideo).Methods(http.MethodDelete)
	management.HandleFunc("/action", r.managementHandler.DeleteAction).Methods(http.MethodDelete)
	management.HandleFunc("/dashboard/metrics", r.managementHandler.DashboardMetrics).Methods(http.MethodGet)
	management.HandleFunc("/dashboard/analysis-trends", r.managementHandler.AnalysisTrends).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
