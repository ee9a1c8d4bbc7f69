package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestTransport(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Transport Suite")
}

var _ = ginkgo.Describe("BaseHandler", func() {
	var handler *BaseHandler

	ginkgo.BeforeEach(func() {
		handler = NewBaseHandler(nil)
	})

	ginkgo.Describe("Pagination", func() {
		paginate := func(query string) (int, int) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/students?"+query, nil)
			return handler.Pagination(req)
		}

		ginkgo.It("should default when no params are given", func() {
			limit, offset := paginate("")
			gomega.Expect(limit).To(gomega.Equal(DefaultPageLimit))
			gomega.Expect(offset).To(gomega.BeZero())
		})

		ginkgo.It("should pass through values in range", func() {
			limit, offset := paginate("limit=50&offset=100")
			gomega.Expect(limit).To(gomega.Equal(50))
			gomega.Expect(offset).To(gomega.Equal(100))
		})

		ginkgo.It("should clamp an oversized limit", func() {
			limit, _ := paginate("limit=500")
			gomega.Expect(limit).To(gomega.Equal(MaxPageLimit))
		})

		ginkgo.It("should ignore a non-positive limit", func() {
			limit, _ := paginate("limit=0")
			gomega.Expect(limit).To(gomega.Equal(DefaultPageLimit))

			limit, _ = paginate("limit=-5")
			gomega.Expect(limit).To(gomega.Equal(DefaultPageLimit))
		})

		ginkgo.It("should ignore a negative offset", func() {
			_, offset := paginate("limit=20&offset=-1")
			gomega.Expect(offset).To(gomega.BeZero())
		})

		ginkgo.It("should ignore garbage values", func() {
			limit, offset := paginate("limit=abc&offset=xyz")
			gomega.Expect(limit).To(gomega.Equal(DefaultPageLimit))
			gomega.Expect(offset).To(gomega.BeZero())
		})
	})

	ginkgo.Describe("ParseID", func() {
		ginkgo.It("should parse a positive id", func() {
			id, err := handler.ParseID("42")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(id).To(gomega.Equal(int64(42)))
		})

		ginkgo.It("should reject zero, negatives and garbage", func() {
			for _, raw := range []string{"0", "-1", "abc", ""} {
				_, err := handler.ParseID(raw)
				gomega.Expect(err).To(gomega.HaveOccurred())
			}
		})
	})
})
