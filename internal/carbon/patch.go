package carbon

// Merge selects how a patch field is applied to a snapshot.
type Merge uint8

const (
	// Authoritative fields always overwrite the previous value.
	Authoritative Merge = iota
	// Sticky fields keep the previous value when the update is zero, since
	// partial frames report omitted readings as 0.
	Sticky
)

// Field is a single merge-patch value.
type Field[T comparable] struct {
	Value T
	Merge Merge
}

func authoritative[T comparable](v T) Field[T] { return Field[T]{Value: v, Merge: Authoritative} }

func sticky[T comparable](v T) Field[T] { return Field[T]{Value: v, Merge: Sticky} }

// ApplyTo writes the value into dst unless the field is sticky and zero.
func (f Field[T]) ApplyTo(dst *T) {
	var zero T
	if f.Merge == Sticky && f.Value == zero {
		return
	}
	*dst = f.Value
}

// Patch is the partial update produced from one telemetry frame.
type Patch struct {
	NozzleTemp       Field[float64]
	BedTemp          Field[float64]
	EnclosureTemp    Field[float64]
	TargetNozzleTemp Field[float64]
	TargetBedTemp    Field[float64]
	ZOffset          Field[float64]

	ModelFanSpeed Field[int]
	AuxFanSpeed   Field[int]
	BoxFanSpeed   Field[int]

	Progress     Field[float64]
	PrintStatus  Field[PrintStatus]
	CurrentLayer Field[int]
	TotalLayers  Field[int]
	PrintSpeed   Field[int]

	ElapsedTimeRaw   Field[int64]
	RemainingTimeRaw Field[int64]
	TotalTimeRaw     Field[int64]
	ElapsedTime      Field[string]
	RemainingTime    Field[string]
	TotalTime        Field[string]
}
