package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	const link = "https://myanimelist.net/anime/1535"

	Convey("Given a supported platform", t, func() {
		Convey("Linux should use xdg-open", func() {
			cmd, err := command("linux", link)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", link})
		})

		Convey("macOS should use open", func() {
			cmd, err := command("darwin", link)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", link})
		})

		Convey("Windows should go through the URL protocol handler", func() {
			cmd, err := command("windows", link)
			So(err, ShouldBeNil)
			So(cmd.Args[1:], ShouldResemble, []string{"url.dll,FileProtocolHandler", link})
		})
	})

	Convey("Given an unsupported platform", t, func() {
		_, err := command("plan9", link)

		Convey("An error naming the platform should be returned", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "plan9")
		})
	})
}
