package scribe_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/scribe"
)

func TestRegistry(t *testing.T) {
	Convey("Given a new registry", t, func() {
		r := scribe.NewRegistry()

		Convey("Built-in scribes are found by name, kind and qualified name", func() {
			adr := r.ByName("adr")
			So(adr, ShouldNotBeNil)
			So(adr.Kind(), ShouldEqual, vcard.KindAddress)
			So(r.ByKind(vcard.KindAddress), ShouldEqual, adr)
			So(r.ByQName(vcard.Namespace, "adr"), ShouldEqual, adr)
			So(r.ByName("SORT-STRING").Kind(), ShouldEqual, vcard.KindSortString)
			So(r.ByName("X-UNKNOWN"), ShouldBeNil)
		})

		Convey("hCard class names map to scribes", func() {
			So(r.ByHTMLClass("category").Kind(), ShouldEqual, vcard.KindCategories)
			So(r.ByHTMLClass("fn").Kind(), ShouldEqual, vcard.KindFormattedName)
			So(r.ByHTMLClass("xml"), ShouldBeNil)
		})

		Convey("Unknown names fall back to raw scribes", func() {
			s := r.ForName("X-CUSTOM")
			So(s, ShouldNotBeNil)
			So(s.Name(), ShouldEqual, "X-CUSTOM")
			So(r.ForProperty(vcard.NewRaw("X-OTHER", "v")).Name(), ShouldEqual, "X-OTHER")
		})

		Convey("Unknown xCard elements", func() {
			Convey("of the vCard namespace are raw", func() {
				s := r.ForXML(vcard.Namespace, "x-custom")
				So(s.Name(), ShouldEqual, "X-CUSTOM")
				space, local := scribe.QName(s)
				So(space, ShouldEqual, vcard.Namespace)
				So(local, ShouldEqual, "x-custom")
			})
			Convey("of a foreign namespace are XML properties", func() {
				s := r.ForXML("http://example.com/ns", "a")
				So(s.Kind(), ShouldEqual, vcard.KindXML)
			})
		})

		Convey("When an extension scribe is registered", func() {
			ext := scribe.NewTextScribe("x-custom", "x-custom", vcard.TypeURI)
			r.Register(ext)

			So(r.ByName("X-CUSTOM"), ShouldEqual, ext)
			So(r.ByKind("x-custom"), ShouldEqual, ext)
			So(r.ByQName(vcard.Namespace, "x-custom"), ShouldEqual, ext)
			So(scribe.DataType(ext, nil, vcard.V3_0), ShouldEqual, vcard.TypeURI)

			Convey("Other registries do not see it", func() {
				So(scribe.NewRegistry().ByName("X-CUSTOM"), ShouldBeNil)
			})

			Convey("Unregistering removes it", func() {
				r.Unregister(ext)
				So(r.ByName("X-CUSTOM"), ShouldBeNil)
				So(r.ByKind("x-custom"), ShouldBeNil)
			})
		})

		Convey("When a scribe is replaced under the same name but another kind", func() {
			first := scribe.NewTextScribe("x-first", "X-SHARED", vcard.TypeText)
			second := scribe.NewTextScribe("x-second", "X-SHARED", vcard.TypeText)
			r.Register(first)
			r.Register(second)

			So(r.ByName("X-SHARED"), ShouldEqual, second)
			So(r.ByKind("x-second"), ShouldEqual, second)
			So(r.ByQName(vcard.Namespace, "x-shared"), ShouldEqual, second)
			So(r.ByKind("x-first"), ShouldBeNil)

			Convey("a scribe sharing only its kind evicts it from every index", func() {
				third := scribe.NewTextScribe("x-second", "X-THIRD", vcard.TypeText)
				r.Register(third)

				So(r.ByKind("x-second"), ShouldEqual, third)
				So(r.ByName("X-SHARED"), ShouldBeNil)
				So(r.ByQName(vcard.Namespace, "x-shared"), ShouldBeNil)
				So(r.ByName("X-THIRD"), ShouldEqual, third)
			})
		})

		Convey("When a built-in scribe is shadowed", func() {
			note := scribe.NewTextScribe(vcard.KindNote, "NOTE", vcard.TypeURI)
			r.Register(note)
			So(r.ByName("note"), ShouldEqual, note)

			Convey("Unregistering restores the built-in", func() {
				r.Unregister(note)
				So(r.ByName("note"), ShouldNotBeNil)
				So(r.ByName("note"), ShouldNotEqual, note)
				So(r.ByName("note").DefaultDataType(vcard.V3_0), ShouldEqual, vcard.TypeText)
			})

			Convey("Unregistering a built-in is a no-op", func() {
				builtin := scribe.NewRegistry().ByName("FN")
				r.Unregister(builtin)
				So(r.ByName("FN"), ShouldEqual, builtin)
			})
		})
	})
}
