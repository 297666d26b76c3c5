package prefetch_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim-lab/uarchsim/prefetch"
)

var _ = Describe("VLDP", func() {
	It("should no-op on a demand hit against an untracked page", func() {
		v := prefetch.NewVLDP(rand.New(rand.NewSource(1)))
		ev := v.Observe(0, 0x2010, 0, false)
		Expect(ev.Prefetches).To(BeEmpty())
		Expect(ev.Useful).To(BeFalse())
	})

	It("should learn a constant delta via the DPT, push prefetched offsets onto the recency ring, and flag a PAE on a later demand access to one of them", func() {
		v := prefetch.NewVLDP(rand.New(rand.NewSource(1)))
		const (
			addr1 = 0x2010
			addr2 = addr1 + 16
			addr3 = addr2 + 16
			addr4 = addr3 + 16
		)

		ev := v.Observe(0, addr1, 0, true)
		Expect(ev.Prefetches).To(BeEmpty())

		// No DPT entry exists yet (it is installed now) and the OPT entry is
		// not yet accurate, so nothing is prefetched.
		ev = v.Observe(0, addr2, 0, true)
		Expect(ev.Prefetches).To(BeEmpty())

		ev = v.Observe(0, addr3, 0, true)
		Expect(ev.Prefetches).To(Equal([]uint64{uint64(addr4)}))

		ev = v.Observe(0, addr4, 0, false)
		Expect(ev.Useful).To(BeTrue())
	})
})
