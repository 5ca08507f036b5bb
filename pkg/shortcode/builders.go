package shortcode

import (
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/validate"
	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

// builder turns shortcode attributes into a widget
type builder func(sc Shortcode) (widgets.Widget, bool)

var builders = map[string]builder{
	"tweet":              buildTweet,
	"twitter_profile":    buildProfile,
	"twitter_list":       buildList,
	"twitter_collection": buildCollection,
	"twitter_search":     buildSearch,
	"twitter_moment":     buildMoment,
	"twitter_follow":     buildFollow,
	"twitter_share":      buildShare,
	"vine":               buildVine,
	"periscope_on_air":   buildPeriscope,
}

var descriptions = map[string]string{
	"tweet":              "Embedded Tweet by ID or URL",
	"twitter_profile":    "Profile timeline",
	"twitter_list":       "List timeline by ID or owner and slug",
	"twitter_collection": "Collection timeline or grid",
	"twitter_search":     "Search timeline from a widget ID",
	"twitter_moment":     "Embedded Moment",
	"twitter_follow":     "Follow button",
	"twitter_share":      "Tweet button",
	"vine":               "Embedded Vine",
	"periscope_on_air":   "Periscope On Air button",
}

// Widget builds the widget described by a shortcode
func Widget(sc Shortcode) (widgets.Widget, bool) {
	build, ok := builders[sc.Name]
	if !ok {
		return nil, false
	}
	return build(sc)
}

// reference returns the url attribute or the first positional value
func reference(sc Shortcode) string {
	if ref := strings.TrimSpace(sc.Attrs["url"]); ref != "" {
		return ref
	}
	return strings.TrimSpace(sc.Positional(0))
}

func resolveAs[T widgets.Widget](ref string) (T, bool) {
	var zero T
	if ref == "" {
		return zero, false
	}
	w, ok := widgets.Resolve(ref)
	if !ok {
		return zero, false
	}
	t, ok := w.(T)
	return t, ok
}

// result converts a typed builder result, keeping a failed build a nil interface
func result[T widgets.Widget](w T, ok bool) (widgets.Widget, bool) {
	if !ok {
		return nil, false
	}
	return w, true
}

func buildTweet(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	if _, ok := m["id"]; !ok {
		ref := reference(sc)
		if validate.SnowflakeID(ref) {
			m["id"] = ref
		} else if t, ok := resolveAs[*widgets.Tweet](ref); ok {
			m["id"] = t.ID()
		}
	}
	return result[*widgets.Tweet](widgets.TweetFromMap(m))
}

func buildProfile(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	if _, ok := m["screen_name"]; !ok {
		ref := reference(sc)
		if p, ok := resolveAs[*widgets.Profile](ref); ok {
			m["screen_name"] = p.ScreenName()
		} else if ref != "" {
			m["screen_name"] = ref
		}
	}
	return result[*widgets.Profile](widgets.ProfileFromMap(m))
}

func buildList(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	_, hasID := m["list_id"]
	_, hasSlug := m["slug"]
	if !hasID && !hasSlug {
		if l, ok := resolveAs[*widgets.List](reference(sc)); ok {
			if l.ID() != "" {
				m["list_id"] = l.ID()
			} else {
				m["owner_screen_name"] = l.Owner()
				m["slug"] = l.Slug()
			}
		}
	}
	return result[*widgets.List](widgets.ListFromMap(m))
}

func buildCollection(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	if _, ok := m["id"]; !ok {
		ref := reference(sc)
		if validate.SnowflakeID(ref) {
			m["id"] = ref
		} else if c, ok := resolveAs[*widgets.Collection](ref); ok {
			m["id"] = c.ID()
		}
	}
	return result[*widgets.Collection](widgets.CollectionFromMap(m))
}

func buildSearch(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	if _, ok := m["widget_id"]; !ok {
		if ref := reference(sc); ref != "" {
			m["widget_id"] = ref
		}
	}
	return result[*widgets.Search](widgets.SearchFromMap(m))
}

func buildMoment(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	if _, ok := m["id"]; !ok {
		ref := reference(sc)
		if validate.SnowflakeID(ref) {
			m["id"] = ref
		} else if moment, ok := resolveAs[*widgets.Moment](ref); ok {
			m["id"] = moment.ID()
		}
	}
	return result[*widgets.Moment](widgets.MomentFromMap(m))
}

func buildFollow(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	if _, ok := m["screen_name"]; !ok {
		ref := reference(sc)
		if p, ok := resolveAs[*widgets.Profile](ref); ok {
			m["screen_name"] = p.ScreenName()
		} else if ref != "" {
			m["screen_name"] = ref
		}
	}
	return result[*widgets.FollowButton](widgets.FollowButtonFromMap(m))
}

func buildShare(sc Shortcode) (widgets.Widget, bool) {
	return result[*widgets.ShareButton](widgets.ShareButtonFromMap(Coerce(sc.Attrs)))
}

func buildVine(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	if _, ok := m["id"]; !ok {
		ref := reference(sc)
		if validate.VineID(ref) {
			m["id"] = ref
		} else if v, ok := resolveAs[*widgets.Vine](ref); ok {
			m["id"] = v.ID()
		}
	}
	return result[*widgets.Vine](widgets.VineFromMap(m))
}

func buildPeriscope(sc Shortcode) (widgets.Widget, bool) {
	m := Coerce(sc.Attrs)
	if _, ok := m["username"]; !ok {
		ref := reference(sc)
		if p, ok := resolveAs[*widgets.PeriscopeOnAir](ref); ok {
			m["username"] = p.Username()
		} else if ref != "" {
			m["username"] = ref
		}
	}
	return result[*widgets.PeriscopeOnAir](widgets.PeriscopeOnAirFromMap(m))
}
