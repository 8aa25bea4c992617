// Package discourse implements the documentation server client against
// a Discourse forum's topic API.
//
// Topics live flat inside one category; the hierarchy only exists in
// the navigation table embedded in the index topic. Raw topic retrieval
// follows redirects, since Discourse changes a topic's address when its
// title changes. Requests are authenticated with an API key and
// proactively throttled.
package discourse
