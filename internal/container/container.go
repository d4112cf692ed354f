package container

import (
	app "cleaneye/internal/application"
	"cleaneye/internal/domain/port"
)

type Container struct {
	UserService   *app.UserService
	ReportService *app.ReportService
}

func New(userRepo port.UserRepository, detector port.WasteDetector, reports port.ReportRepository, threshold float64) *Container {
	userService := app.NewUserService(userRepo)
	reportService := app.NewReportService(detector, reports, threshold)

	return &Container{
		UserService:   userService,
		ReportService: reportService,
	}
}
