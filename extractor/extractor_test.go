package extractor

import (
	"testing"

	"github.com/anisan-cli/anicat/anime"
	. "github.com/smartystreets/goconvey/convey"
)

const deathNote = "https://myanimelist.net/anime/1535"

func TestMyAnimeListNormalize(t *testing.T) {
	Convey("Given the MyAnimeList extractor", t, func() {
		mal := NewMyAnimeList()

		Convey("Every known form of a title should map to the canonical link", func() {
			for _, raw := range []string{
				"https://myanimelist.net/anime.php?id=1535",
				"https://myanimelist.net/anime/1535/Death_Note",
				"https://myanimelist.net/anime/1535",
				"http://www.myanimelist.net/anime/1535/Death_Note/userrecs",
				" https://myanimelist.net/anime.php?sort=1&id=1535 ",
				"HTTPS://MyAnimeList.net/anime/1535",
				"https://MYANIMELIST.NET/anime/1535/Death_Note",
				"Http://WWW.myanimelist.net/anime.php?id=1535",
			} {
				So(mal.IsResponsible(raw), ShouldBeTrue)
				So(mal.Normalize(raw), ShouldEqual, deathNote)
			}
		})

		Convey("Normalization should be idempotent", func() {
			once := mal.Normalize("https://myanimelist.net/anime/1535/Death_Note")
			So(mal.Normalize(once), ShouldEqual, once)
		})

		Convey("Other URLs should be returned unchanged", func() {
			genre := "https://myanimelist.net/anime/genre/1/Action"
			So(mal.Normalize(genre), ShouldEqual, genre)
		})

		Convey("Blank and foreign URLs are not claimed", func() {
			So(mal.IsResponsible(""), ShouldBeFalse)
			So(mal.IsResponsible("myanimelist.net/anime/1"), ShouldBeFalse)
			So(mal.IsResponsible("https://www.anisearch.com/anime/3633"), ShouldBeFalse)
			So(mal.IsResponsible("https://www.myanimelist.net/anime/1"), ShouldBeTrue)
		})
	})
}

const malInfoPage = `<html><head>
<meta property="og:title" content="Death Note">
<meta property="og:image" content="https://cdn.myanimelist.net/images/anime/9/9453.jpg">
</head><body>
<h1 class="title-name"><strong>Death Note</strong></h1>
<div class="spaceit_pad"><span class="dark_text">Type:</span> <a href="/topanime.php?type=tv">TV</a></div>
<div class="spaceit_pad"><span class="dark_text">Episodes:</span>
  37
</div>
<div class="related-entries">
  <a href="/anime/2994/Death_Note__Rewrite">Death Note: Rewrite</a>
  <a href="https://myanimelist.net/anime/2994/Death_Note__Rewrite/pics">Pictures</a>
  <a href="/manga/21/Death_Note">Death Note (Manga)</a>
  <a href="/anime/1535/Death_Note">self</a>
</div>
<table class="anime_detail_related_anime"><tr><td>
  <a href="https://myanimelist.net/anime.php?id=32">Other</a>
</td></tr></table>
</body></html>`

func TestMyAnimeListParse(t *testing.T) {
	Convey("Given a MyAnimeList info page", t, func() {
		mal := NewMyAnimeList()
		link := anime.NewInfoLink(deathNote)

		Convey("Metadata should be extracted", func() {
			a, err := mal.ParseMetadata(link, malInfoPage)
			So(err, ShouldBeNil)
			So(a, ShouldNotBeNil)
			So(a.Title, ShouldEqual, "Death Note")
			So(a.Type, ShouldEqual, anime.TV)
			So(a.Episodes, ShouldEqual, 37)
			So(a.Link, ShouldResemble, link)
			So(a.Picture, ShouldEqual, "https://cdn.myanimelist.net/images/anime/9/9453.jpg")
			So(a.Thumbnail, ShouldEqual, "https://cdn.myanimelist.net/images/anime/9/9453t.jpg")
		})

		Convey("A page without a title yields no metadata", func() {
			a, err := mal.ParseMetadata(link, "<html><body></body></html>")
			So(err, ShouldBeNil)
			So(a, ShouldBeNil)
		})

		Convey("Related anime should be canonical, deduplicated and exclude the page itself", func() {
			related, err := mal.ParseRelated(link, malInfoPage)
			So(err, ShouldBeNil)
			So(related.Links(), ShouldResemble, []anime.InfoLink{
				anime.NewInfoLink("https://myanimelist.net/anime/2994"),
				anime.NewInfoLink("https://myanimelist.net/anime/32"),
			})
		})
	})

	Convey("Given a MyAnimeList recommendations page with irregular markup", t, func() {
		mal := NewMyAnimeList()
		link := anime.NewInfoLink(deathNote)
		page := `<div class="borderClass">
<div class="picSurround"><a href="https://myanimelist.net/anime/1575/Code_Geass" class="hoverinfo_trigger"><img></a></div>
<div class="spaceit">Recommended by <a href="/profile/someone">  <strong>12</strong></a> users</div>
</div>
<div class="picSurround"><a href="/anime/19/Monster"><img></a></div>
<div>Recommended by
		<strong>3</strong> users</div>
<div class="picSurround"><a href="/anime/1575/Code_Geass"><img></a></div>
<div>Recommended by<b>2</b></div>
<div class="picSurround"><a href="/anime/5114/FMA"><img></a></div>
<div>no count here</div>
<div class="picSurround"><a href="/anime/1535/Death_Note"><img></a></div>
<div>Recommended by 9</div>`

		recs, err := mal.ParseRecommendations(link, page)
		So(err, ShouldBeNil)

		Convey("Counts should be read and summed per target", func() {
			So(recs[anime.NewInfoLink("https://myanimelist.net/anime/1575")], ShouldEqual, 14)
			So(recs[anime.NewInfoLink("https://myanimelist.net/anime/19")], ShouldEqual, 3)
		})

		Convey("A block without a count counts once", func() {
			So(recs[anime.NewInfoLink("https://myanimelist.net/anime/5114")], ShouldEqual, 1)
		})

		Convey("The page itself is never recommended", func() {
			So(recs.Len(), ShouldEqual, 3)
		})
	})
}

func TestMyAnimeListListing(t *testing.T) {
	Convey("Given a MyAnimeList genre listing", t, func() {
		mal := NewMyAnimeList()

		Convey("Pages should be addressed with the page parameter", func() {
			So(mal.PageURL("https://myanimelist.net/anime/genre/1/Action", 3), ShouldEqual, "https://myanimelist.net/anime/genre/1/Action?page=3")
			So(mal.PageURL("https://myanimelist.net/anime/genre/1/Action?page=2", 4), ShouldEqual, "https://myanimelist.net/anime/genre/1/Action?page=4")
		})

		Convey("Links should be canonical and unique in page order", func() {
			page := `<a href="https://myanimelist.net/anime/20/Naruto">Naruto</a>
<a href="https://myanimelist.net/anime/20/Naruto" class="image">img</a>
<a href="/anime/1/Cowboy_Bebop">Cowboy Bebop</a>`
			So(mal.ParseListing(page), ShouldResemble, []anime.InfoLink{
				anime.NewInfoLink("https://myanimelist.net/anime/20"),
				anime.NewInfoLink("https://myanimelist.net/anime/1"),
			})
		})

		Convey("The not-found page should be recognized", func() {
			So(mal.IsNotFound("<title>404 Not Found - MyAnimeList.net</title>"), ShouldBeTrue)
			So(mal.IsNotFound("<title>Action - Anime</title>"), ShouldBeFalse)
		})
	})
}

func TestAniSearch(t *testing.T) {
	Convey("Given the aniSearch extractor", t, func() {
		as := NewAniSearch()
		canonical := "https://www.anisearch.com/anime/3633"
		link := anime.NewInfoLink(canonical)

		Convey("Localized hosts and slugs should normalize to the canonical link", func() {
			So(as.Normalize("https://www.anisearch.de/anime/3633,death-note"), ShouldEqual, canonical)
			So(as.Normalize("http://anisearch.com/anime/3633,death-note/relations"), ShouldEqual, canonical)
			So(as.Normalize(canonical), ShouldEqual, canonical)
			So(as.Normalize("HTTPS://WWW.AniSearch.DE/anime/3633,death-note"), ShouldEqual, canonical)
			So(as.Normalize("https://AniSearch.com/anime/3633"), ShouldEqual, canonical)
			So(as.Normalize("https://www.anisearch.com/genre/action"), ShouldEqual, "https://www.anisearch.com/genre/action")
		})

		Convey("Pages are rendered headless", func() {
			So(as.UsesHeadless(), ShouldBeTrue)
			So(as.RecommendationsURL(link), ShouldEqual, canonical+"/recommendations")
		})

		Convey("Metadata should be extracted", func() {
			page := `<html><head>
<meta property="og:image" content="https://cdn.anisearch.com/images/anime/cover/full/3/3633.webp">
</head><body>
<h1 id="htitle"><span itemprop="name">Death Note</span></h1>
<ul class="xlist"><li><div class="type"><span class="header">Type:</span> TV-Series, 37 (~23 min)</div></li></ul>
<section id="relations">
  <a href="anime/4124,death-note-rewrite">Rewrite</a>
  <a href="manga/1020,death-note">Manga</a>
</section>
</body></html>`

			a, err := as.ParseMetadata(link, page)
			So(err, ShouldBeNil)
			So(a.Title, ShouldEqual, "Death Note")
			So(a.Type, ShouldEqual, anime.TV)
			So(a.Episodes, ShouldEqual, 37)
			So(a.Thumbnail, ShouldEqual, "https://cdn.anisearch.com/images/anime/cover/3/3633.webp")

			related, err := as.ParseRelated(link, page)
			So(err, ShouldBeNil)
			So(related.Links(), ShouldResemble, []anime.InfoLink{anime.NewInfoLink("https://www.anisearch.com/anime/4124")})
		})

		Convey("Recommendations carry their vote counts", func() {
			page := `<ul>
<li data-count="7"><a href="anime/1575,code-geass">Code Geass</a></li>
<li data-count=""><a href="anime/19,monster">Monster</a></li>
</ul>`
			recs, err := as.ParseRecommendations(link, page)
			So(err, ShouldBeNil)
			So(recs[anime.NewInfoLink("https://www.anisearch.com/anime/1575")], ShouldEqual, 7)
			So(recs[anime.NewInfoLink("https://www.anisearch.com/anime/19")], ShouldEqual, 1)
		})

		Convey("Listings are paged by path suffix", func() {
			So(as.PageURL("https://www.anisearch.com/genre/action", 2), ShouldEqual, "https://www.anisearch.com/genre/action/page-2")
			So(as.PageURL("https://www.anisearch.com/genre/action/page-5/", 3), ShouldEqual, "https://www.anisearch.com/genre/action/page-3")
			So(as.ParseListing(`<a href="anime/3633,death-note">x</a><a href="anime/3633,death-note">y</a>`), ShouldHaveLength, 1)
			So(as.IsNotFound("Seite nicht gefunden"), ShouldBeTrue)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the default registry", t, func() {
		r := Default()

		Convey("URLs should dispatch to the responsible site", func() {
			e, ok := r.For("https://myanimelist.net/anime/1535").Get()
			So(ok, ShouldBeTrue)
			So(e.Name(), ShouldEqual, "MyAnimeList")

			e, ok = r.For("https://www.anisearch.de/anime/3633").Get()
			So(ok, ShouldBeTrue)
			So(e.Name(), ShouldEqual, "aniSearch")
		})

		Convey("Blank, invalid and unknown URLs have no extractor", func() {
			So(r.For("").IsAbsent(), ShouldBeTrue)
			So(r.For("::::").IsAbsent(), ShouldBeTrue)
			So(r.For("https://example.com/anime/1").IsAbsent(), ShouldBeTrue)
			So(r.ListerFor("https://example.com/tag").IsAbsent(), ShouldBeTrue)
		})

		Convey("Normalization goes through the responsible extractor", func() {
			So(r.Normalize(anime.NewInfoLink("https://myanimelist.net/anime.php?id=1535")), ShouldResemble, anime.NewInfoLink(deathNote))
			So(r.Normalize(anime.NewInfoLink("HTTPS://MyAnimeList.net/anime/1535/Death_Note")), ShouldResemble, anime.NewInfoLink(deathNote))
			unknown := anime.NewInfoLink("https://example.com/a")
			So(r.Normalize(unknown), ShouldResemble, unknown)
		})

		Convey("Headless rendering depends on the site", func() {
			So(r.UsesHeadless("https://www.anisearch.com/anime/3633"), ShouldBeTrue)
			So(r.UsesHeadless(deathNote), ShouldBeFalse)
			So(r.UsesHeadless("https://example.com"), ShouldBeFalse)
		})

		Convey("Listers are found for listing URLs", func() {
			So(r.ListerFor("https://myanimelist.net/anime/genre/1/Action").IsPresent(), ShouldBeTrue)
		})
	})
}
