package branch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim-lab/uarchsim/branch"
)

var _ = Describe("TwoBit", func() {
	It("should saturate at 3 after enough consecutive taken outcomes", func() {
		p := branch.TwoBit{}
		e := &branch.Entry{Valid: true}
		for i := 0; i < 10; i++ {
			p.Update(e, 0, true)
		}
		Expect(e.Counter).To(Equal(uint8(3)))
	})

	It("should saturate at 0 after enough consecutive not-taken outcomes", func() {
		p := branch.TwoBit{}
		e := &branch.Entry{Valid: true, Counter: 3}
		for i := 0; i < 10; i++ {
			p.Update(e, 0, false)
		}
		Expect(e.Counter).To(Equal(uint8(0)))
	})

	It("should predict taken once the counter reaches 2", func() {
		p := branch.TwoBit{}
		e := &branch.Entry{Counter: 2}
		Expect(p.Predict(e, 0)).To(BeTrue())
		e.Counter = 1
		Expect(p.Predict(e, 0)).To(BeFalse())
	})
})

var _ = Describe("TwoLevelGlobal", func() {
	It("should index the shared table by BHR XOR the low PC bits", func() {
		p := branch.NewTwoLevelGlobal()
		e := &branch.Entry{}

		// bhr starts at 0: pc=0 lands on index 0.
		p.Update(e, 0, true) // pht[0]: 0->1, bhr becomes 1
		// bhr is now 1: pc=1 also lands on index 1^1=0.
		p.Update(e, 1, true) // pht[0]: 1->2, bhr becomes 3
		// bhr is now 3: pc=3 lands on index 3^3=0 again.
		Expect(p.Predict(e, 3)).To(BeTrue())
	})
})

var _ = Describe("Perceptron", func() {
	It("should predict taken from the all-ones initial state", func() {
		p := branch.NewPerceptron()
		Expect(p.Predict(&branch.Entry{}, 0)).To(BeTrue())
	})

	It("should not train when the prediction was correct and confident", func() {
		p := branch.NewPerceptron()
		p.Update(&branch.Entry{}, 0, true)
		Expect(p.Predict(&branch.Entry{}, 0)).To(BeTrue())
	})

	It("should drive every weight of the indexed perceptron to 0 on a single wrong, confident prediction", func() {
		p := branch.NewPerceptron()
		p.Update(&branch.Entry{}, 0, false) // trains row 0b1111^0 = 15, bhr becomes 0b1110
		// pc=1 maps back to row 0b1110^0b0001 = 15, whose weights are now all 0:
		// the dot product is 0, which is not > 0.
		Expect(p.Predict(&branch.Entry{}, 1)).To(BeFalse())
	})
})
