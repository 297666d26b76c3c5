package runconfig_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim-lab/uarchsim/branch"
	"github.com/archsim-lab/uarchsim/prefetch"
	"github.com/archsim-lab/uarchsim/runconfig"
)

var _ = Describe("BranchConfig", func() {
	It("should default to the two-level global predictor", func() {
		cfg := runconfig.DefaultBranchConfig()
		Expect(cfg.Predictor).To(Equal(branch.TwoLevelGlobalKind))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should round-trip through a JSON file", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "branch.json")

		cfg := runconfig.DefaultBranchConfig()
		cfg.Predictor = branch.PerceptronKind
		Expect(cfg.SaveConfig(path)).To(Succeed())

		loaded, err := runconfig.LoadBranchConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Predictor).To(Equal(branch.PerceptronKind))
	})

	It("should reject an unknown predictor name", func() {
		cfg := &runconfig.BranchConfig{Predictor: "bogus"}
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should clone independently of the original", func() {
		cfg := runconfig.DefaultBranchConfig()
		clone := cfg.Clone()
		clone.Predictor = branch.NotTakenKind
		Expect(cfg.Predictor).To(Equal(branch.TwoLevelGlobalKind))
	})
})

var _ = Describe("CacheConfig", func() {
	It("should default to VLDP with a fixed seed", func() {
		cfg := runconfig.DefaultCacheConfig()
		Expect(cfg.Prefetcher).To(Equal(prefetch.VLDPKind))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should round-trip through a JSON file", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "cache.json")

		cfg := &runconfig.CacheConfig{Prefetcher: prefetch.StrideKind, Seed: 42}
		Expect(cfg.SaveConfig(path)).To(Succeed())

		loaded, err := runconfig.LoadCacheConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Prefetcher).To(Equal(prefetch.StrideKind))
		Expect(loaded.Seed).To(Equal(int64(42)))
	})

	It("should reject an unknown prefetcher name", func() {
		cfg := &runconfig.CacheConfig{Prefetcher: "bogus"}
		Expect(cfg.Validate()).To(HaveOccurred())
	})
})
