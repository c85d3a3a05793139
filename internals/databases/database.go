package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/configs"
	attendanceModel "github.com/Tresorbana/school-sub000/internals/features/attendance/records/model"
	permissionModel "github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/model"
	selfstudyModel "github.com/Tresorbana/school-sub000/internals/features/attendance/selfstudy/model"
	auditModel "github.com/Tresorbana/school-sub000/internals/features/audit/model"
	healthModel "github.com/Tresorbana/school-sub000/internals/features/health/model"
	academicsModel "github.com/Tresorbana/school-sub000/internals/features/school/academics/model"
	userModel "github.com/Tresorbana/school-sub000/internals/features/users/auth/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=school_attendance&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // compatible with PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] DB connection failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates/updates the schema. The composite unique indexes are what
// turn a concurrent double submission into a clean conflict instead of a
// silent duplicate row, so they live here explicitly rather than only as
// struct tags.
func Migrate() {
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&academicsModel.ClassModel{},
		&academicsModel.StudentModel{},
		&academicsModel.CourseModel{},
		&academicsModel.RosterSlotModel{},
		&attendanceModel.AttendanceRecordModel{},
		&permissionModel.PermissionRequestModel{},
		&selfstudyModel.SelfStudySessionModel{},
		&healthModel.HealthIncidentModel{},
		&auditModel.AuditLogModel{},
	)
	if err != nil {
		log.Fatalf("[ERROR] migration failed: %v", err)
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_records_slot_date
		   ON attendance_records (attendance_record_roster_slot_id, attendance_record_date)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_permission_requests_slot_date
		   ON permission_requests (permission_request_roster_slot_id, permission_request_period_date)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_self_study_sessions_class_period_date
		   ON self_study_sessions (self_study_session_class_id, self_study_session_period, self_study_session_date)`,
	}
	for _, s := range stmts {
		if err := DB.Exec(s).Error; err != nil {
			log.Fatalf("[ERROR] index migration failed: %v", err)
		}
	}
	log.Println("[INFO] migration done.")
}

func WarmUp() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
