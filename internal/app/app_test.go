package app_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/qrgen/internal/app"
	"github.com/kpauljoseph/qrgen/internal/config"
	"github.com/kpauljoseph/qrgen/internal/testutil"
)

func envFrom(values map[string]string) *config.Env {
	return config.NewEnv(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

func imageHash(path string) string {
	hash, err := testutil.FileImageHash(path)
	Expect(err).NotTo(HaveOccurred())
	return hash
}

var _ = Describe("Execute", func() {
	var (
		workDir string
		stdout  *bytes.Buffer
		stderr  *bytes.Buffer
		envVars map[string]string
	)

	BeforeEach(func() {
		var err error
		workDir, err = os.MkdirTemp("", "qrgen-app-*")
		Expect(err).NotTo(HaveOccurred())
		workDir, err = filepath.EvalSymlinks(workDir)
		Expect(err).NotTo(HaveOccurred())

		wd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(workDir)).To(Succeed())
		DeferCleanup(func() {
			Expect(os.Chdir(wd)).To(Succeed())
			Expect(os.RemoveAll(workDir)).To(Succeed())
		})

		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		envVars = map[string]string{}
	})

	run := func(args ...string) int {
		GinkgoWriter.Printf("running qrgen %v\n", args)
		code := app.Execute(args, envFrom(envVars), stdout, stderr)
		GinkgoWriter.Printf("stdout: %s\nstderr: %s\n", stdout.String(), stderr.String())
		return code
	}

	Context("Successful runs", func() {
		It("should encode the built-in default into ./qr_codes", func() {
			Expect(run()).To(Equal(app.ExitOK))

			expected := filepath.Join(workDir, "qr_codes", "github.com.png")
			Expect(stdout.String()).To(Equal("QR code saved to " + expected + "\n"))
			Expect(stderr.String()).To(BeEmpty())

			img, _, err := testutil.ReadImage(expected)
			Expect(err).NotTo(HaveOccurred())
			Expect(testutil.DecodeQR(img)).To(Equal("http://github.com/kaw393939"))
		})

		It("should put --out report under the default directory", func() {
			Expect(run("--out", "report")).To(Equal(app.ExitOK))
			Expect(filepath.Join(workDir, "qr_codes", "report.png")).To(BeARegularFile())
		})

		It("should keep --out . inside the output directory", func() {
			Expect(run("--out", ".")).To(Equal(app.ExitOK))

			expected := filepath.Join(workDir, "qr_codes") + string(filepath.Separator) + "..png"
			Expect(stdout.String()).To(Equal("QR code saved to " + expected + "\n"))
			Expect(expected).To(BeARegularFile())
			Expect(filepath.Join(workDir, "qr_codes.png")).NotTo(BeAnExistingFile())
		})

		It("should honour --output-dir and derive the name from the URL", func() {
			dir := filepath.Join(workDir, "a", "b")
			Expect(run("--url", "http://example.com:8080/path", "--output-dir", dir)).To(Equal(app.ExitOK))
			Expect(filepath.Join(dir, "example.com-8080.png")).To(BeARegularFile())
		})

		It("should use an explicit path verbatim regardless of --output-dir", func() {
			custom := filepath.Join(workDir, "custom")
			Expect(os.MkdirAll(custom, 0755)).To(Succeed())
			out := filepath.Join(custom, "myqr.jpg")

			Expect(run("--url", "hi", "--out", out, "--output-dir", filepath.Join(workDir, "other"))).To(Equal(app.ExitOK))
			Expect(stdout.String()).To(Equal("QR code saved to " + out + "\n"))
			Expect(out).To(BeARegularFile())
			Expect(filepath.Join(workDir, "other")).To(BeADirectory())
		})

		It("should read DEFAULT_URL and OUTPUT_DIR from the environment", func() {
			envVars[config.EnvURL] = "https://env.example.org"
			envVars[config.EnvOutputDir] = "env_codes"

			Expect(run()).To(Equal(app.ExitOK))
			Expect(filepath.Join(workDir, "env_codes", "env.example.org.png")).To(BeARegularFile())
		})

		It("should read values from a dotenv file", func() {
			Expect(os.WriteFile(".env", []byte("DEFAULT_URL=https://dotenv.example\n"), 0644)).To(Succeed())

			Expect(run()).To(Equal(app.ExitOK))
			Expect(filepath.Join(workDir, "qr_codes", "dotenv.example.png")).To(BeARegularFile())
		})

		It("should take defaults from a config file", func() {
			Expect(os.WriteFile("qrgen.yaml", []byte("default_url: https://yaml.example\noutput_dir: yaml_codes\n"), 0644)).To(Succeed())

			Expect(run("--config", "qrgen.yaml")).To(Equal(app.ExitOK))
			Expect(filepath.Join(workDir, "yaml_codes", "yaml.example.png")).To(BeARegularFile())
		})

		It("should overwrite the same file when run twice", func() {
			Expect(run("--url", "same", "--out", "twice.png")).To(Equal(app.ExitOK))
			path := filepath.Join(workDir, "qr_codes", "twice.png")
			first := imageHash(path)

			stdout.Reset()
			Expect(run("--url", "same", "--out", "twice.png")).To(Equal(app.ExitOK))
			Expect(imageHash(path)).To(Equal(first))
		})

		It("should keep logs off stdout when verbose", func() {
			Expect(run("--verbose", "--url", "text only")).To(Equal(app.ExitOK))
			Expect(stdout.String()).To(Equal("QR code saved to " + filepath.Join(workDir, "qr_codes", "qr.png") + "\n"))
			Expect(stderr.String()).To(ContainSubstring("DEBUG: "))
		})

		It("should print version information", func() {
			Expect(run("--version")).To(Equal(app.ExitOK))
			Expect(stdout.String()).To(HavePrefix("qrgen\n"))
			Expect(filepath.Join(workDir, "qr_codes")).NotTo(BeADirectory())
		})
	})

	Context("Failures", func() {
		It("should reject whitespace-only input without touching the disk", func() {
			Expect(run("--url", "   ")).To(Equal(app.ExitError))
			Expect(stderr.String()).To(Equal(app.NoContentMessage + "\n"))
			Expect(stdout.String()).To(BeEmpty())
			Expect(filepath.Join(workDir, "qr_codes")).NotTo(BeADirectory())
		})

		It("should reject a blank DEFAULT_URL", func() {
			envVars[config.EnvURL] = " \t "
			Expect(run()).To(Equal(app.ExitError))
			Expect(stderr.String()).To(Equal(app.NoContentMessage + "\n"))
		})

		It("should report a missing parent directory for an explicit path", func() {
			out := filepath.Join(workDir, "missing", "x.png")
			Expect(run("--out", out)).To(Equal(app.ExitError))
			Expect(stderr.String()).To(HavePrefix("Error: failed to create image file"))
			Expect(out).NotTo(BeAnExistingFile())
		})

		It("should reject an invalid recovery level", func() {
			Expect(run("--level", "Z")).To(Equal(app.ExitError))
			Expect(stderr.String()).To(ContainSubstring("recovery level"))
		})

		It("should reject a missing config file", func() {
			Expect(run("--config", "nope.yaml")).To(Equal(app.ExitError))
			Expect(stderr.String()).To(ContainSubstring("failed to read config"))
		})

		It("should exit with a usage error on unknown flags", func() {
			Expect(run("--bogus")).To(Equal(app.ExitUsage))
		})

		It("should exit cleanly on --help", func() {
			Expect(run("--help")).To(Equal(app.ExitOK))
			Expect(stderr.String()).To(ContainSubstring("-output-dir"))
		})
	})
})
