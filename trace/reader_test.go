package trace_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim-lab/uarchsim/trace"
)

func writeTraceFile(dir, name, contents string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(contents), 0o644)).To(Succeed())
	return path
}

var _ = Describe("BranchReader", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should open lazily and yield records in order", func() {
		path := writeTraceFile(dir, "branch.trace",
			"b.cond;OP_BRANCH_COND;100;4;C\nb;OP_BRANCH;200;4;I\n")
		r := trace.NewBranchReader(path)

		rec, ok, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(rec.Address).To(Equal(uint64(100)))
		Expect(rec.Size).To(Equal(uint64(4)))
		Expect(rec.IsConditional).To(BeTrue())
		Expect(rec.IsBranch()).To(BeTrue())

		rec, ok, err = r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(rec.IsConditional).To(BeFalse())

		_, ok, err = r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should fail with ErrOpenFile on a missing file", func() {
		r := trace.NewBranchReader(filepath.Join(dir, "missing.trace"))
		_, _, err := r.Next()
		Expect(err).To(MatchError(trace.ErrOpenFile))
	})

	It("should reject a line with the wrong field count", func() {
		path := writeTraceFile(dir, "bad.trace", "asm;op;1;2\n")
		r := trace.NewBranchReader(path)
		_, _, err := r.Next()
		Expect(err).To(HaveOccurred())
		var malformed *trace.MalformedLineError
		Expect(err).To(BeAssignableToTypeOf(malformed))
	})
})

var _ = Describe("MemoryReader", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should parse all six fields", func() {
		path := writeTraceFile(dir, "mem.trace", "ldr;400;OP_LOAD;4096;0;0\n")
		r := trace.NewMemoryReader(path)

		rec, ok, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(rec.Address).To(Equal(uint64(400)))
		Expect(rec.Read1).To(Equal(uint64(4096)))
		Expect(rec.Read2).To(Equal(uint64(0)))
		Expect(rec.Write).To(Equal(uint64(0)))
	})

	It("should skip zero-valued access slots", func() {
		path := writeTraceFile(dir, "mem2.trace", "str;400;OP_STORE;0;0;8192\n")
		r := trace.NewMemoryReader(path)

		rec, _, err := r.Next()
		Expect(err).NotTo(HaveOccurred())

		accesses := rec.Accesses()
		Expect(accesses).To(HaveLen(1))
		Expect(accesses[0].Address).To(Equal(uint64(8192)))
		Expect(accesses[0].IsWrite).To(BeTrue())
	})
})
