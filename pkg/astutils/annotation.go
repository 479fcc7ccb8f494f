package astutils

import (
	"github.com/go-park/pausable/pkg/pausable"
)

type (
	Annotation    string
	AnnotationKey string
)

func (a Annotation) String() string { return string(a) }

const (
	// CommentPausable for struct while comment @Pausable generate a file with _pausable.gen.go suffix
	CommentPausable = Annotation("@Pausable")
	// CommentPause for struct method, the method refuses to run while its label is paused
	CommentPause = Annotation("@Pause")
	// CommentIfPaused for struct method, the method only runs while its label is paused
	CommentIfPaused = Annotation("@IfPaused")

	CommentKeyStorageKey = AnnotationKey("pausedStorageKey")
	CommentKeyName       = AnnotationKey("name")
	CommentKeyExcept     = AnnotationKey("except")
	CommentKeyOwner      = AnnotationKey("owner")
	CommentKeySelf       = AnnotationKey("self")
)

var (
	guardAnnotationList = []Annotation{CommentPause, CommentIfPaused}
	systemAnnotation    = map[Annotation]struct{}{
		CommentPausable: {},
		CommentPause:    {},
		CommentIfPaused: {},
	}
)

func IsSystemAnnotation(anno Annotation) bool {
	_, ok := systemAnnotation[anno]
	return ok
}

func GuardAnnotationList() []Annotation {
	return guardAnnotationList
}

// Polarity maps a guard annotation to the guard it injects.
func Polarity(anno Annotation) (pausable.Polarity, bool) {
	switch anno {
	case CommentPause:
		return pausable.ForbidWhilePaused, true
	case CommentIfPaused:
		return pausable.RequireWhilePaused, true
	}
	return 0, false
}
