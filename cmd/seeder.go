package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"fee_payments", "fees", "attendance_records", "grades",
				"assignment_submissions", "assignments", "notifications",
				"crm_leads", "cms_pages", "students", "teachers",
				"classrooms", "user_sessions", "users",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		accounts := []struct {
			Email     string
			Username  string
			FirstName string
			LastName  string
			Role      string
		}{
			{"admin@school.test", "admin", "Ani", "Wijaya", "admin"},
			{"teacher@school.test", "budi.t", "Budi", "Santoso", "teacher"},
			{"student@school.test", "citra.s", "Citra", "Lestari", "student"},
			{"parent@school.test", "dewi.p", "Dewi", "Lestari", "parent"},
			{"staff@school.test", "eko.s", "Eko", "Prasetyo", "staff"},
		}

		for _, a := range accounts {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", a.Email).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO users (email, username, password_hash, first_name, last_name, role, is_active, is_verified, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, true, now(), now())",
				a.Email, a.Username, string(hash), a.FirstName, a.LastName, a.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", a.Email, err)
			}
			fmt.Println("Seeded user:", a.Email)
		}

		var teacherUserID, studentUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "teacher@school.test").Row().Scan(&teacherUserID); err != nil {
			log.Fatalf("failed to lookup teacher user: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "student@school.test").Row().Scan(&studentUserID); err != nil {
			log.Fatalf("failed to lookup student user: %v", err)
		}

		var teacherID int64
		if err := db.Raw("SELECT id FROM teachers WHERE employee_no = ?", "EMP-0001").Row().Scan(&teacherID); err != nil {
			if err := db.Exec(
				"INSERT INTO teachers (user_id, employee_no, first_name, last_name, subjects, status, hired_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 'active', now(), now(), now())",
				teacherUserID, "EMP-0001", "Budi", "Santoso", "Mathematics",
			).Error; err != nil {
				log.Fatalf("failed to insert teacher: %v", err)
			}
			if err := db.Raw("SELECT id FROM teachers WHERE employee_no = ?", "EMP-0001").Row().Scan(&teacherID); err != nil {
				log.Fatalf("teacher not found after insert: %v", err)
			}
			fmt.Println("Seeded teacher EMP-0001")
		}

		year := fmt.Sprintf("%d/%d", time.Now().Year(), time.Now().Year()+1)
		var classroomID int64
		if err := db.Raw("SELECT id FROM classrooms WHERE name = ? AND section = ? AND academic_year = ?", "Grade 7", "A", year).Row().Scan(&classroomID); err != nil {
			if err := db.Exec(
				"INSERT INTO classrooms (name, section, academic_year, capacity, homeroom_teacher_id, created_at, updated_at) VALUES (?, ?, ?, 30, ?, now(), now())",
				"Grade 7", "A", year, teacherID,
			).Error; err != nil {
				log.Fatalf("failed to insert classroom: %v", err)
			}
			if err := db.Raw("SELECT id FROM classrooms WHERE name = ? AND section = ? AND academic_year = ?", "Grade 7", "A", year).Row().Scan(&classroomID); err != nil {
				log.Fatalf("classroom not found after insert: %v", err)
			}
			fmt.Println("Seeded classroom Grade 7 A")
		}

		var studentID int64
		if err := db.Raw("SELECT id FROM students WHERE admission_no = ?", "ADM-0001").Row().Scan(&studentID); err != nil {
			if err := db.Exec(
				"INSERT INTO students (user_id, admission_no, first_name, last_name, classroom_id, guardian_name, guardian_phone, status, admitted_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, 'active', now(), now(), now())",
				studentUserID, "ADM-0001", "Citra", "Lestari", classroomID, "Dewi Lestari", "+62-812-0000-0001",
			).Error; err != nil {
				log.Fatalf("failed to insert student: %v", err)
			}
			if err := db.Raw("SELECT id FROM students WHERE admission_no = ?", "ADM-0001").Row().Scan(&studentID); err != nil {
				log.Fatalf("student not found after insert: %v", err)
			}
			fmt.Println("Seeded student ADM-0001")
		}

		var feeExists int
		if err := db.Raw("SELECT 1 FROM fees WHERE student_id = ? AND fee_type = ?", studentID, "tuition").Row().Scan(&feeExists); err != nil {
			if err := db.Exec(
				"INSERT INTO fees (student_id, fee_type, amount, currency, due_date, status, created_at, updated_at) VALUES (?, 'tuition', 150000000, 'IDR', ?, 'unpaid', now(), now())",
				studentID, time.Now().AddDate(0, 1, 0),
			).Error; err != nil {
				log.Fatalf("failed to insert fee: %v", err)
			}
			fmt.Println("Seeded tuition fee for ADM-0001")
		}

		var pageExists int
		if err := db.Raw("SELECT 1 FROM cms_pages WHERE slug = ?", "about-us").Row().Scan(&pageExists); err != nil {
			var adminID int64
			if err := db.Raw("SELECT id FROM users WHERE email = ?", "admin@school.test").Row().Scan(&adminID); err != nil {
				log.Fatalf("failed to lookup admin user: %v", err)
			}
			if err := db.Exec(
				"INSERT INTO cms_pages (slug, title, body, published, published_at, created_by, created_at, updated_at) VALUES (?, ?, ?, true, now(), ?, now(), now())",
				"about-us", "About Us", "Welcome to our school.", adminID,
			).Error; err != nil {
				log.Fatalf("failed to insert cms page: %v", err)
			}
			fmt.Println("Seeded cms page about-us")
		}

		fmt.Println("Seeding complete. All accounts use the password: password")
	},
}
