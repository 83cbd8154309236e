package scene

// Lifecycle events emitted on a scene's Systems.Events emitter.
const (
	EventStart    = "start"
	EventPause    = "pause"
	EventResume   = "resume"
	EventSleep    = "sleep"
	EventWake     = "wake"
	EventShutdown = "shutdown"
	EventDestroy  = "destroy"

	// EventCreate fires once the scene reaches StatusRunning.
	EventCreate = "create"

	// Transition lifecycle points. EventTransitionInit fires from the
	// target scene's init phase, EventTransitionStart once it is created.
	EventTransitionInit  = "transitioninit"
	EventTransitionStart = "transitionstart"
)
