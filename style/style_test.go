package style

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncate(t *testing.T) {
	Convey("Given a long title", t, func() {
		title := "Sore ga Seiyuu! Special Edition"

		Convey("It should be cut to the width with an ellipsis", func() {
			cut := Truncate(10)(title)
			So(cut, ShouldEndWith, "…")
			So(len([]rune(cut)), ShouldBeLessThanOrEqualTo, 10)
		})

		Convey("A non-positive width should leave it untouched", func() {
			So(Truncate(0)(title), ShouldEqual, title)
		})

		Convey("Short text should pass through", func() {
			So(Truncate(100)(title), ShouldEqual, title)
		})
	})
}

func TestAnimeType(t *testing.T) {
	Convey("Given known and unknown formats", t, func() {
		Convey("Both should render the format name", func() {
			So(strings.Contains(AnimeType("TV"), "TV"), ShouldBeTrue)
			So(strings.Contains(AnimeType("Music"), "Music"), ShouldBeTrue)
		})
	})
}
