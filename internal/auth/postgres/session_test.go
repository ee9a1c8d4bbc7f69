package postgres

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hanifm/school-management/internal/auth"
	userDatamodel "github.com/hanifm/school-management/internal/core/datamodel/user"
)

func TestAuthRepositories(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Repositories Suite")
}

type SQLiteSession struct {
	ID           string     `gorm:"primaryKey"`
	UserID       int64      `gorm:"column:user_id;not null;index"`
	TokenID      string     `gorm:"column:token_id;uniqueIndex;not null"`
	UserAgent    *string    `gorm:"column:user_agent"`
	IPAddress    *string    `gorm:"column:ip_address"`
	DeviceType   *string    `gorm:"column:device_type"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	IssuedAt     time.Time  `gorm:"column:issued_at;not null"`
	ExpiresAt    time.Time  `gorm:"column:expires_at;not null"`
	LastActivity time.Time  `gorm:"column:last_activity;not null"`
	RevokedAt    *time.Time `gorm:"column:revoked_at"`
}

func (SQLiteSession) TableName() string {
	return "user_sessions"
}

var _ = ginkgo.Describe("SessionRepository", func() {
	var (
		db   *gorm.DB
		repo *SessionRepository
		now  time.Time
	)

	newSession := func(userID int64, tokenID string, expiresAt time.Time) *userDatamodel.Session {
		return &userDatamodel.Session{
			ID:           "sess-" + tokenID,
			UserID:       userID,
			TokenID:      tokenID,
			IsActive:     true,
			IssuedAt:     now,
			ExpiresAt:    expiresAt,
			LastActivity: now,
		}
	}

	ginkgo.BeforeEach(func() {
		var err error
		now = time.Now()

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		err = db.AutoMigrate(&SQLiteSession{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		repo = NewSessionRepository(db)
	})

	ginkgo.AfterEach(func() {
		sqlDB, err := db.DB()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(sqlDB.Close()).To(gomega.Succeed())
	})

	ginkgo.Describe("Create and GetByTokenID", func() {
		ginkgo.It("should round-trip a session row", func() {
			session := newSession(1, "tid-1", now.Add(time.Hour))
			gomega.Expect(repo.Create(session)).To(gomega.Succeed())

			found, err := repo.GetByTokenID("tid-1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.UserID).To(gomega.Equal(int64(1)))
			gomega.Expect(found.IsActive).To(gomega.BeTrue())
		})

		ginkgo.It("should map a missing row to the not found error", func() {
			_, err := repo.GetByTokenID("no-such-token")
			gomega.Expect(err).To(gomega.Equal(auth.ErrSessionNotFound))
		})
	})

	ginkgo.Describe("Revoke", func() {
		ginkgo.It("should deactivate the row and set revoked_at", func() {
			gomega.Expect(repo.Create(newSession(1, "tid-1", now.Add(time.Hour)))).To(gomega.Succeed())

			gomega.Expect(repo.Revoke("tid-1", now)).To(gomega.Succeed())

			found, err := repo.GetByTokenID("tid-1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.IsActive).To(gomega.BeFalse())
			gomega.Expect(found.RevokedAt).NotTo(gomega.BeNil())
		})

		ginkgo.It("should tolerate revoking twice", func() {
			gomega.Expect(repo.Create(newSession(1, "tid-1", now.Add(time.Hour)))).To(gomega.Succeed())

			gomega.Expect(repo.Revoke("tid-1", now)).To(gomega.Succeed())
			gomega.Expect(repo.Revoke("tid-1", now.Add(time.Minute))).To(gomega.Succeed())

			found, err := repo.GetByTokenID("tid-1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.IsActive).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("RevokeAllForUser", func() {
		ginkgo.It("should skip the excepted token and other users", func() {
			gomega.Expect(repo.Create(newSession(1, "tid-keep", now.Add(time.Hour)))).To(gomega.Succeed())
			gomega.Expect(repo.Create(newSession(1, "tid-drop", now.Add(time.Hour)))).To(gomega.Succeed())
			gomega.Expect(repo.Create(newSession(2, "tid-other-user", now.Add(time.Hour)))).To(gomega.Succeed())

			n, err := repo.RevokeAllForUser(1, now, "tid-keep")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(n).To(gomega.Equal(int64(1)))

			keep, err := repo.GetByTokenID("tid-keep")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(keep.IsActive).To(gomega.BeTrue())

			other, err := repo.GetByTokenID("tid-other-user")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(other.IsActive).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("ListActiveForUser", func() {
		ginkgo.It("should exclude expired and revoked rows", func() {
			gomega.Expect(repo.Create(newSession(1, "tid-live", now.Add(time.Hour)))).To(gomega.Succeed())
			gomega.Expect(repo.Create(newSession(1, "tid-expired", now.Add(-time.Hour)))).To(gomega.Succeed())
			gomega.Expect(repo.Create(newSession(1, "tid-revoked", now.Add(time.Hour)))).To(gomega.Succeed())
			gomega.Expect(repo.Revoke("tid-revoked", now)).To(gomega.Succeed())

			sessions, err := repo.ListActiveForUser(1, now)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(sessions).To(gomega.HaveLen(1))
			gomega.Expect(sessions[0].TokenID).To(gomega.Equal("tid-live"))
		})
	})

	ginkgo.Describe("DeactivateExpired", func() {
		ginkgo.It("should flip only rows past expiry", func() {
			gomega.Expect(repo.Create(newSession(1, "tid-live", now.Add(time.Hour)))).To(gomega.Succeed())
			gomega.Expect(repo.Create(newSession(1, "tid-expired", now.Add(-time.Minute)))).To(gomega.Succeed())

			n, err := repo.DeactivateExpired(now)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(n).To(gomega.Equal(int64(1)))

			live, err := repo.GetByTokenID("tid-live")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(live.IsActive).To(gomega.BeTrue())
		})
	})
})
