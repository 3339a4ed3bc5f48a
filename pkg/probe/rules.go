package probe

import (
	"fmt"
)

// Rule templates are relative to the SDK root unless absolute. "%s" is
// replaced by the probe parameter and a "*" makes the rule a glob.
var globalRules = map[Kind]string{
	// The tools package has no marker of its own; the package manager is
	// part of it.
	KindSDKTools:          "tools/android",
	KindPlatformTools:     "platform-tools",
	KindBuildTools:        "build-tools/%s*",
	KindSupportLibrary:    "extras/android/support",
	KindSupportRepository: "extras/android/m2repository",
	KindAdMob:             "extras/google/admob_ads_sdk",
	KindAnalytics:         "extras/google/analytics_sdk_v2",
	KindPlayServices:      "extras/google/google_play_services",
	KindGoogleRepository:  "extras/google/m2repository",
	KindPlayAPKExpansion:  "extras/google/play_apk_expansion",
	KindPlayBilling:       "extras/google/play_billing",
	KindPlayLicensing:     "extras/google/play_licensing",
	KindWebDriver:         "extras/google/webdriver",
	KindDocumentation:     "docs",
	KindHAXM:              "/System/Library/LaunchDaemons/com.intel.haxm.plist",
}

var apiRules = map[Kind]string{
	KindSamples:     "samples/android-%s",
	KindSDKPlatform: "platforms/android-%s/android.jar",
	KindARMImage:    "system-images/android-%s/armeabi-v7a",
	KindIntelImage:  "system-images/android-%s/x86",
	KindMIPSImage:   "system-images/android-%s/mips",
	KindGoogleAPIs:  "add-ons/addon-google_apis-google-%s",
	KindSources:     "sources/android-%s",
}

func init() {
	if err := validateRules(); err != nil {
		panic(err)
	}
}

// validateRules checks that every kind has exactly one rule
func validateRules() error {
	for kind := range globalRules {
		if _, dup := apiRules[kind]; dup {
			return fmt.Errorf("probe: kind %s has both a global and an API rule", kind)
		}
	}
	for kind := range titles {
		_, global := globalRules[kind]
		_, api := apiRules[kind]
		if !global && !api {
			return fmt.Errorf("probe: kind %s has no rule", kind)
		}
	}
	return nil
}

func ruleFor(kind Kind) (string, bool) {
	if tmpl, ok := globalRules[kind]; ok {
		return tmpl, true
	}
	tmpl, ok := apiRules[kind]
	return tmpl, ok
}
