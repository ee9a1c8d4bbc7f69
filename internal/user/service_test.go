package user

import (
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockUserRepository struct {
	users  map[int64]*User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(u *User) error {
	u.ID = m.nextID
	m.nextID++
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) List(filter ListUsersFilter, limit, offset int) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Active != nil && u.IsActive != *filter.Active {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) Update(u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) SetActive(id int64, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		repo    *mockUserRepository
		service *Service
	)

	createUser := func(email, role string) *User {
		u, err := service.CreateUser(CreateUserDTO{
			Email:     email,
			Password:  "correct-horse",
			FirstName: "Dewi",
			LastName:  "Lestari",
			Role:      role,
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return u
	}

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepository()
		service = NewService(repo, bcrypt.MinCost, testLogger())
	})

	ginkgo.Describe("CreateUser", func() {
		ginkgo.It("should store a bcrypt hash, never the password", func() {
			u := createUser("dewi@school.test", "teacher")

			gomega.Expect(u.PasswordHash).NotTo(gomega.Equal("correct-horse"))
			err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should start the account active", func() {
			u := createUser("dewi@school.test", "teacher")
			gomega.Expect(u.IsActive).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a duplicate email", func() {
			createUser("dewi@school.test", "teacher")

			_, err := service.CreateUser(CreateUserDTO{
				Email:     "dewi@school.test",
				Password:  "another-pass",
				FirstName: "Dewi",
				LastName:  "Lestari",
				Role:      "staff",
			})
			gomega.Expect(err).To(gomega.MatchError(ErrDuplicateEmail))
		})

		ginkgo.It("should reject a short password", func() {
			_, err := service.CreateUser(CreateUserDTO{
				Email:     "dewi@school.test",
				Password:  "short",
				FirstName: "Dewi",
				LastName:  "Lestari",
				Role:      "teacher",
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an unknown role", func() {
			_, err := service.CreateUser(CreateUserDTO{
				Email:     "dewi@school.test",
				Password:  "correct-horse",
				FirstName: "Dewi",
				LastName:  "Lestari",
				Role:      "janitor",
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("UpdateUser", func() {
		ginkgo.It("should apply partial updates", func() {
			u := createUser("dewi@school.test", "teacher")

			phone := "+62811111111"
			updated, err := service.UpdateUser(u.ID, UpdateUserDTO{Phone: &phone})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(*updated.Phone).To(gomega.Equal(phone))
			gomega.Expect(updated.FirstName).To(gomega.Equal("Dewi"))
		})

		ginkgo.It("should reject an empty update", func() {
			u := createUser("dewi@school.test", "teacher")

			_, err := service.UpdateUser(u.ID, UpdateUserDTO{})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("DeactivateUser", func() {
		ginkgo.It("should keep the row but block the account", func() {
			u := createUser("dewi@school.test", "teacher")

			gomega.Expect(service.DeactivateUser(u.ID)).To(gomega.Succeed())

			stored, err := service.GetUser(u.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stored.IsActive).To(gomega.BeFalse())
		})

		ginkgo.It("should report a missing user", func() {
			err := service.DeactivateUser(12345)
			gomega.Expect(err).To(gomega.MatchError(ErrUserNotFound))
		})
	})

	ginkgo.Describe("ListUsers", func() {
		ginkgo.It("should filter by role and active flag", func() {
			createUser("a@school.test", "teacher")
			b := createUser("b@school.test", "teacher")
			createUser("c@school.test", "staff")
			gomega.Expect(service.DeactivateUser(b.ID)).To(gomega.Succeed())

			active := true
			users, err := service.ListUsers(ListUsersFilter{Role: "teacher", Active: &active}, 20, 0)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(users).To(gomega.HaveLen(1))
			gomega.Expect(users[0].Email).To(gomega.Equal("a@school.test"))
		})
	})
})
