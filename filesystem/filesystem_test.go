package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestBackend(t *testing.T) {
	Convey("Given the default backend", t, func() {
		SetOsFs()

		Convey("It should be the OS filesystem", func() {
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("When switching to memory", func() {
			SetMemMapFs()
			defer SetOsFs()

			Convey("The in-memory backend should be active", func() {
				So(API().Name(), ShouldEqual, "MemMapFS")
			})
		})
	})

	Convey("Given a temporary backend", t, func() {
		SetOsFs()
		restore := Use(afero.NewMemMapFs())

		Convey("Files should land in it until restored", func() {
			So(API().WriteFile("/lists.json", []byte("{}"), os.ModePerm), ShouldBeNil)
			So(API().Name(), ShouldEqual, "MemMapFS")

			restore()
			So(API().Name(), ShouldEqual, "OsFs")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given GacheFs over an in-memory backend", t, func() {
		restore := Use(afero.NewMemMapFs())
		defer restore()

		var fs GacheFs

		Convey("Writes should be visible through API", func() {
			So(fs.MkdirAll("/cache", os.ModePerm), ShouldBeNil)

			f, err := fs.OpenFile("/cache/entry.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte(`{"ok":true}`))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/entry.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"ok":true}`)
		})
	})
}
