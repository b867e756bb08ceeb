package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anisan-cli/anicat/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWhere(t *testing.T) {
	Convey("Given an in-memory filesystem and a custom config path", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		custom := filepath.Join(os.TempDir(), "anicat-where-test")
		t.Setenv(EnvConfigPath, custom)

		Convey("Config should honor the override", func() {
			So(Config(), ShouldEqual, custom)
			exists, err := filesystem.API().DirExists(custom)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("Lists should live inside the config directory", func() {
			So(Lists(), ShouldEqual, filepath.Join(custom, "lists.json"))
		})

		Convey("Logs should be a created subdirectory of config", func() {
			So(Logs(), ShouldEqual, filepath.Join(custom, "logs"))
		})
	})

	Convey("Given a custom cache path", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		custom := filepath.Join(os.TempDir(), "anicat-cache-test")
		t.Setenv(EnvCachePath, custom)

		Convey("The browser directory should be created inside it", func() {
			So(Browser(), ShouldEqual, filepath.Join(custom, "browser"))
			exists, err := filesystem.API().DirExists(Browser())
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
