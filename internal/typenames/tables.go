// Package typenames maps GTM type discriminators to human-readable display
// names. Lookups return an explicit known flag instead of mutating hidden
// state; callers that want translation-gap reporting route lookups through a
// Tracker. The tables are static data so new discriminators are added by
// editing one map, or at runtime through a TOML overrides file.
package typenames

import "strings"

var variableTypeNames = map[string]string{
	"v":     "Data Layer Variable",
	"k":     "Cookie",
	"u":     "URL",
	"f":     "Referrer",
	"e":     "Event",
	"j":     "JavaScript Variable",
	"jsm":   "Custom JavaScript",
	"d":     "DOM Element",
	"c":     "Constant",
	"gas":   "Google Analytics Settings",
	"r":     "Random Number",
	"aev":   "Auto-Event Variable",
	"vis":   "Element Visibility",
	"ctv":   "Container Version",
	"dbg":   "Debug Mode",
	"cid":   "Container ID",
	"hid":   "HTML ID",
	"smm":   "Lookup Table",
	"remm":  "Regex Table",
	"ed":    "Event Data",
	"t":     "Environment Name",
	"awec":  "User Provided Data",
	"uv":    "Undefined Value",
	"fs":    "Firestore Lookup",
	"rh":    "Request Header",
	"sgtmk": "Request - Cookie Value",
}

var tagTypeNames = map[string]string{
	"html":                "Custom HTML",
	"img":                 "Custom Image",
	"ua":                  "Universal Analytics",
	"ga":                  "Google Analytics",
	"gaawe":               "GA4 Event",
	"googtag":             "Google Tag",
	"gaawc":               "GA4 Configuration",
	"flc":                 "Floodlight Counter",
	"fls":                 "Floodlight Sales",
	"awct":                "Google Ads Conversion",
	"sp":                  "Google Ads Remarketing",
	"gclidw":              "Conversion Linker",
	"opt":                 "Optimize",
	"cegg":                "Criteo",
	"crto":                "Criteo OneTag",
	"pntr":                "Pinterest",
	"twitter_website_tag": "Twitter",
	"baut":                "Bing Ads",
	"mpm":                 "Mouseflow",
	"hjtc":                "Hotjar",
	"zone":                "Zone",
	"veip":                "Ve Interactive",
	"awj":                 "ActiveCampaign Site Tracking",
	"lcl":                 "Leadfeeder",
	"sdl":                 "Data Layer Declaration",
	"awud":                "Adwords User Data",
	"ll":                  "LinkedIN Insight",
	"ta":                  "TikTok Analytics",
	"sgtmadsct":           "Google Ads Conversion Tracking",
	"sgtmgaaw":            "Google Analytics: GA4",
}

var triggerTypeNames = map[string]string{
	"pageview":             "Page View",
	"domReady":             "DOM Ready",
	"windowLoaded":         "Window Loaded",
	"customEvent":          "Custom Event",
	"trigger":              "Always Fire",
	"historyChange":        "History Change",
	"js":                   "JavaScript Error",
	"linkClick":            "Click - Just Links",
	"click":                "Click - All Elements",
	"formSubmit":           "Form Submission",
	"elementVisibility":    "Element Visibility",
	"scrollDepth":          "Scroll Depth",
	"timer":                "Timer",
	"youTubeVideo":         "YouTube Video",
	"file":                 "File Download",
	"amp":                  "AMP",
	"consent":              "Consent",
	"adConversion":         "Ad Conversion",
	"floodlight":           "Floodlight",
	"googleAds":            "Google Ads",
	"googleAdsRemarketing": "Google Ads Remarketing",
	"http":                 "HTTP Request",
	"sdl":                  "Server Data Layer",
	"pageError":            "Page Error",
}

var clientTypeNames = map[string]string{
	"gtm":                  "Google Tag Manager",
	"ga4":                  "Google Analytics 4",
	"http":                 "HTTP Client",
	"universal_analytics":  "Universal Analytics",
	"measurement_protocol": "Measurement Protocol",
	"firebase":             "Firebase",
	"bigquery":             "BigQuery",
	"firestore":            "Firestore",
}

// Web container built-in variable types.
var builtInWebTypeNames = map[string]string{
	"PAGE_URL":                      "Page URL",
	"PAGE_HOSTNAME":                 "Page Hostname",
	"PAGE_PATH":                     "Page Path",
	"REFERRER":                      "Referrer",
	"EVENT":                         "Event",
	"CLICK_ELEMENT":                 "Click Element",
	"CLICK_CLASSES":                 "Click Classes",
	"CLICK_ID":                      "Click ID",
	"CLICK_TARGET":                  "Click Target",
	"CLICK_URL":                     "Click URL",
	"CLICK_TEXT":                    "Click Text",
	"FORM_ELEMENT":                  "Form Element",
	"FORM_CLASSES":                  "Form Classes",
	"FORM_ID":                       "Form ID",
	"FORM_TARGET":                   "Form Target",
	"FORM_URL":                      "Form URL",
	"FORM_TEXT":                     "Form Text",
	"ERROR_MESSAGE":                 "Error Message",
	"ERROR_URL":                     "Error URL",
	"ERROR_LINE":                    "Error Line",
	"NEW_HISTORY_URL":               "New History URL",
	"OLD_HISTORY_URL":               "Old History URL",
	"NEW_HISTORY_FRAGMENT":          "New History Fragment",
	"OLD_HISTORY_FRAGMENT":          "Old History Fragment",
	"NEW_HISTORY_STATE":             "New History State",
	"OLD_HISTORY_STATE":             "Old History State",
	"HISTORY_SOURCE":                "History Source",
	"CONTAINER_ID":                  "Container ID",
	"CONTAINER_VERSION":             "Container Version",
	"DEBUG_MODE":                    "Debug Mode",
	"RANDOM_NUMBER":                 "Random Number",
	"HTML_ID":                       "HTML ID",
	"ENVIRONMENT_NAME":              "Environment Name",
	"APP_ID":                        "App ID",
	"APP_NAME":                      "App Name",
	"APP_VERSION_CODE":              "App Version Code",
	"APP_VERSION_NAME":              "App Version Name",
	"CAMPAIGN_CONTENT":              "Campaign Content",
	"CAMPAIGN_MEDIUM":               "Campaign Medium",
	"CAMPAIGN_NAME":                 "Campaign Name",
	"CAMPAIGN_SOURCE":               "Campaign Source",
	"CAMPAIGN_TERM":                 "Campaign Term",
	"CAMPAIGN_ID":                   "Campaign ID",
	"DEVICE_NAME":                   "Device Name",
	"EVENT_NAME":                    "Event Name",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN":                 "Firebase Event Parameter Campaign",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN_ACLID":           "Firebase Event Parameter Campaign ACLID",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN_ANID":            "Firebase Event Parameter Campaign ANID",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN_CLICK_TIMESTAMP": "Firebase Event Parameter Campaign Click Timestamp",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN_CONTENT":         "Firebase Event Parameter Campaign Content",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN_CP1":             "Firebase Event Parameter Campaign CP1",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN_GCLID":           "Firebase Event Parameter Campaign GCLID",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN_SOURCE":          "Firebase Event Parameter Campaign Source",
	"FIRE_BASE_EVENT_PARAMETER_CAMPAIGN_TERM":            "Firebase Event Parameter Campaign Term",
	"LANGUAGE":                      "Language",
	"OS_VERSION":                    "OS Version",
	"PLATFORM":                      "Platform",
	"SDK_VERSION":                   "SDK Version",
	"DEVICE_MARKETING_NAME":         "Device Marketing Name",
	"DEVICE_MODEL":                  "Device Model",
	"RESOLUTION":                    "Resolution",
	"ADVERTISER_ID":                 "Advertiser ID",
	"ADVERTISING_TRACKING_ENABLED":  "Advertising Tracking Enabled",
	"SCREEN_NAME":                   "Screen Name",
	"SCREEN_RESOLUTION":             "Screen Resolution",
	"CLIENT_SCREEEN_HEIGHT":         "Client Screen Height",
	"CLIENT_SCREEEN_WIDTH":          "Client Screen Width",
	"CLIENT_VIEWPORT_HEIGHT":        "Client Viewport Height",
	"CLIENT_VIEWPORT_WIDTH":         "Client Viewport Width",
	"CLIENT_NAME":                   "Client Name",
	"CLIENT_ID":                     "Client ID",
	"CLIENT_VERSION":                "Client Version",
	"VIDEO_PROVIDER":                "Video Provider",
	"VIDEO_URL":                     "Video URL",
	"VIDEO_TITLE":                   "Video Title",
	"VIDEO_DURATION":                "Video Duration",
	"VIDEO_PERCENT":                 "Video Percent",
	"VIDEO_VISIBLE":                 "Video Visible",
	"VIDEO_STATUS":                  "Video Status",
	"VIDEO_CURRENT_TIME":            "Video Current Time",
	"PERCENT_VISIBLE":               "Percent Visible",
	"ON_SCREEN_DURATION":            "On Screen Duration",
	"ELEMENT_VISIBILITY_RATIO":      "Element Visibility Ratio",
	"ELEMENT_VISIBILITY_TIME":       "Element Visibility Time",
	"ELEMENT_VISIBILITY_FIRST_TIME": "Element Visibility First Time",
	"ELEMENT_VISIBILITY_RECENT_TIME": "Element Visibility Recent Time",
	"REQUEST_PATH":                  "Request Path",
	"REQUEST_METHOD":                "Request Method",
	"CLIENT_NAME_VERSION":           "Client Name and Version",
}

// Server-side container built-in variable types.
var builtInServerTypeNames = map[string]string{
	"CLIENT_ID":         "Client ID",
	"CLIENT_NAME":       "Client Name",
	"CONTAINER_ID":      "Container ID",
	"CONTAINER_VERSION": "Container Version",
	"DEBUG_MODE":        "Debug Mode",
	"ENVIRONMENT_NAME":  "Environment Name",
	"EVENT_NAME":        "Event Name",
	"IP_ADDRESS":        "IP Address",
	"LANGUAGE":          "Language",
	"PAGE_ENCODING":     "Page Encoding",
	"PAGE_LOCATION":     "Page Location",
	"PAGE_REFERRER":     "Page Referrer",
	"PAGE_TITLE":        "Page Title",
	"PROTOCOL_VERSION":  "Protocol Version",
	"REQUEST_METHOD":    "Request Method",
	"REQUEST_PATH":      "Request Path",
	"REQUEST_QUERY":     "Request Query",
	"SCREEN_RESOLUTION": "Screen Resolution",
	"SERVER_NAME":       "Server Name",
	"TIME":              "Timestamp",
	"USER_AGENT":        "User Agent",
	"USER_IP":           "User IP",
	"VIEWPORT_SIZE":     "Viewport Size",
	"VISITOR_REGION":    "Visitor Region",
}

// builtInDisplayNames is the set of display names that a reference can
// legitimately point at without any matching Variable definition: the
// runtime provides these.
var builtInDisplayNames = buildDisplayNameSet()

func buildDisplayNameSet() map[string]struct{} {
	set := make(map[string]struct{}, len(builtInWebTypeNames)+len(builtInServerTypeNames))
	for _, name := range builtInWebTypeNames {
		set[name] = struct{}{}
	}
	for _, name := range builtInServerTypeNames {
		set[name] = struct{}{}
	}
	return set
}

// VariableTypeName returns the display name for a variable type
// discriminator. The known flag is false for unrecognized discriminators;
// cvt_* types are always known.
func VariableTypeName(varType string) (string, bool) {
	if strings.HasPrefix(varType, "cvt_") {
		return "Custom Template Variable", true
	}
	if name, ok := variableTypeNames[varType]; ok {
		return name, true
	}
	return "Unknown (" + varType + ")", false
}

// TagTypeName returns the display name for a tag type discriminator.
func TagTypeName(tagType string) (string, bool) {
	if strings.HasPrefix(tagType, "cvt_") {
		return "Custom Template Tag", true
	}
	if name, ok := tagTypeNames[tagType]; ok {
		return name, true
	}
	return "Unknown Tag (" + tagType + ")", false
}

// TriggerTypeName returns the display name for a trigger type discriminator.
func TriggerTypeName(triggerType string) (string, bool) {
	if name, ok := triggerTypeNames[triggerType]; ok {
		return name, true
	}
	return "Unknown Trigger (" + triggerType + ")", false
}

// ClientTypeName returns the display name for a client type discriminator.
func ClientTypeName(clientType string) (string, bool) {
	if strings.HasPrefix(clientType, "cvt_") {
		return "Custom Client Template", true
	}
	if name, ok := clientTypeNames[clientType]; ok {
		return name, true
	}
	return "Unknown Client (" + clientType + ")", false
}

// BuiltInTypeName returns the display name for a built-in variable type,
// consulting the web table before the server table.
func BuiltInTypeName(builtInType string) (string, bool) {
	if name, ok := builtInWebTypeNames[builtInType]; ok {
		return name, true
	}
	if name, ok := builtInServerTypeNames[builtInType]; ok {
		return name, true
	}
	return "Unknown Built-in (" + builtInType + ")", false
}

// IsBuiltInDisplayName reports whether name is a display name the runtime
// provides as a built-in variable.
func IsBuiltInDisplayName(name string) bool {
	_, ok := builtInDisplayNames[name]
	return ok
}

// IsInternalName reports whether a reference names a GTM-internal runtime
// variable (the underscore-prefixed family: _event, _triggers_fired, ...).
func IsInternalName(name string) bool {
	return strings.HasPrefix(name, "_")
}
