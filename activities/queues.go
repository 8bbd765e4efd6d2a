package activities

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/bcc-code/bcc-media-stills/environment"
	"github.com/samber/lo"
)

func GetStillActivities() []any {
	return []any{
		Stills.ProbeFrameRate,
		Stills.ScanTimecodes,
		Stills.CreateOutputDir,
		Stills.ExtractStill,
	}
}

func getFunctionName(i any) string {
	if fullName, ok := i.(string); ok {
		return fullName
	}
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	elements := strings.Split(fullName, ".")
	shortName := elements[len(elements)-1]
	return strings.TrimSuffix(shortName, "-fm")
}

var stillActivities = lo.Map(GetStillActivities(), func(i any, _ int) string {
	return getFunctionName(i)
})

// GetQueueForActivity returns the task queue the activity is registered on.
func GetQueueForActivity(activity any) string {
	if lo.Contains(stillActivities, getFunctionName(activity)) {
		return environment.GetWorkerQueue()
	}
	return environment.GetQueue()
}
