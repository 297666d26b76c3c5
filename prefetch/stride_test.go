package prefetch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim-lab/uarchsim/prefetch"
)

var _ = Describe("Stride", func() {
	It("should learn a constant stride and issue prefetches once confirmed", func() {
		s := prefetch.NewStride()
		const pc = 0x400

		ev := s.Observe(pc, 0x1000, 0, false)
		Expect(ev.Prefetches).To(BeEmpty())
		Expect(ev.Useful).To(BeFalse())

		ev = s.Observe(pc, 0x1040, 0, false)
		Expect(ev.Prefetches).To(BeEmpty())
		Expect(ev.Useful).To(BeFalse())

		ev = s.Observe(pc, 0x1080, 0, false)
		Expect(ev.Prefetches).To(Equal([]uint64{0x10C0}))
		Expect(ev.Useful).To(BeFalse()) // no prefetch was issued before this access

		ev = s.Observe(pc, 0x10C0, 0, false)
		Expect(ev.Prefetches).To(Equal([]uint64{0x1100}))
		Expect(ev.Useful).To(BeTrue())
	})

	It("should not cross-contaminate entries keyed by different PCs", func() {
		s := prefetch.NewStride()
		s.Observe(0x400, 0x1000, 0, false)
		s.Observe(0x800, 0x2000, 0, false)

		ev := s.Observe(0x400, 0x1040, 0, false)
		Expect(ev.Prefetches).To(BeEmpty()) // still establishing stride for 0x400
	})
})
