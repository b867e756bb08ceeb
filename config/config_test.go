package config

import (
	"testing"

	"github.com/anisan-cli/anicat/filesystem"
	"github.com/anisan-cli/anicat/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	Convey("Given an empty filesystem", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		So(Setup(), ShouldBeNil)

		Convey("Every registered key should have a value", func() {
			for k := range Default {
				So(viper.Get(k), ShouldNotBeNil)
			}
		})

		Convey("Crawl defaults should match the documented ones", func() {
			So(viper.GetInt(key.RecommendationsLimit), ShouldEqual, 100)
			So(viper.GetInt(key.RecommendationsCutoff), ShouldEqual, 80)
			So(viper.GetInt(key.DownloaderRetryLimit), ShouldEqual, 0)
			So(viper.GetBool(key.DownloaderHeadless), ShouldBeTrue)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the parallelism field", t, func() {
		field := Default[key.CrawlerParallelism]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "ANICAT_CRAWLER_PARALLELISM")
		})

		Convey("Parse should convert integers", func() {
			v, err := field.Parse([]string{"8"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 8)
		})

		Convey("Parse should reject negative values and garbage", func() {
			_, err := field.Parse([]string{"-1"})
			So(err, ShouldNotBeNil)

			_, err = field.Parse([]string{"many"})
			So(err, ShouldNotBeNil)

			_, err = field.Parse(nil)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given the cutoff field", t, func() {
		field := Default[key.RecommendationsCutoff]

		Convey("Values outside 1..100 should be rejected", func() {
			_, err := field.Parse([]string{"0"})
			So(err, ShouldNotBeNil)
			_, err = field.Parse([]string{"101"})
			So(err, ShouldNotBeNil)

			v, err := field.Parse([]string{"100"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 100)
		})
	})

	Convey("Given enumerated string fields", t, func() {
		icons, level := Default[key.IconsVariant], Default[key.LogsLevel]

		_, err := icons.Parse([]string{"ascii"})
		So(err, ShouldNotBeNil)

		v, err := level.Parse([]string{"debug"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "debug")

		_, err = level.Parse([]string{"loud"})
		So(err, ShouldNotBeNil)
	})

	Convey("Given a boolean field", t, func() {
		headless := Default[key.DownloaderHeadless]
		v, err := headless.Parse([]string{"false"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)
	})
}

func TestLookup(t *testing.T) {
	Convey("Given a misspelled key", t, func() {
		_, err := Lookup("recommendations.cutof")

		Convey("The closest key should be suggested", func() {
			var unknown *UnknownKeyError
			So(err, ShouldHaveSameTypeAs, unknown)
			So(err.(*UnknownKeyError).Closest, ShouldEqual, key.RecommendationsCutoff)
		})
	})

	Convey("Given Set and Restore", t, func() {
		defer viper.Set(key.RecommendationsLimit, 100)

		v, err := Set(key.RecommendationsLimit, []string{"25"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 25)
		So(viper.GetInt(key.RecommendationsLimit), ShouldEqual, 25)

		So(Restore(key.RecommendationsLimit), ShouldBeNil)
		So(viper.GetInt(key.RecommendationsLimit), ShouldEqual, 100)

		So(Restore("nope"), ShouldNotBeNil)
	})
}
