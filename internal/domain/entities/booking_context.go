package entities

// BookingContext is the accumulating record for one user's journey.
// Values are treated as immutable: Merge and Clone return fresh copies.
type BookingContext struct {
	PatientID     string         `json:"patient_id,omitempty"`
	PatientData   map[string]any `json:"patient_data,omitempty"`
	Enhanced      *bool          `json:"enhanced,omitempty"`
	EssentialInfo *EssentialInfo `json:"essential_info,omitempty"`
	Surgery       *Surgery       `json:"surgery,omitempty"`
	Surgeon       *Surgeon       `json:"surgeon,omitempty"`
	Implant       *Implant       `json:"implant,omitempty"`
	Hospital      *Hospital      `json:"hospital,omitempty"`
	Booking       *BookingRef    `json:"booking,omitempty"`
}

// Contribution is the partial context a stage hands to the controller.
// Nil or empty fields are absent and never clear an existing value.
type Contribution struct {
	PatientID     string         `json:"patient_id,omitempty"`
	PatientData   map[string]any `json:"patient_data,omitempty"`
	Enhanced      *bool          `json:"enhanced,omitempty"`
	EssentialInfo *EssentialInfo `json:"essential_info,omitempty"`
	Surgery       *Surgery       `json:"surgery,omitempty"`
	Surgeon       *Surgeon       `json:"surgeon,omitempty"`
	Implant       *Implant       `json:"implant,omitempty"`
	Hospital      *Hospital      `json:"hospital,omitempty"`
	Booking       *BookingRef    `json:"booking,omitempty"`
}

// BookingRef is the finalized submission result stored on the context
type BookingRef struct {
	ID     string        `json:"id"`
	Status BookingStatus `json:"status"`
}

// IsEmpty reports whether the contribution carries no keys
func (c Contribution) IsEmpty() bool {
	return len(c.Keys()) == 0
}

// Keys lists the context keys present in the contribution
func (c Contribution) Keys() []string {
	return BookingContext(c).Keys()
}

// Keys lists the context keys currently present
func (b BookingContext) Keys() []string {
	keys := make([]string, 0, 9)
	if b.PatientID != "" {
		keys = append(keys, "patient_id")
	}
	if b.PatientData != nil {
		keys = append(keys, "patient_data")
	}
	if b.Enhanced != nil {
		keys = append(keys, "enhanced")
	}
	if b.EssentialInfo != nil {
		keys = append(keys, "essential_info")
	}
	if b.Surgery != nil {
		keys = append(keys, "surgery")
	}
	if b.Surgeon != nil {
		keys = append(keys, "surgeon")
	}
	if b.Implant != nil {
		keys = append(keys, "implant")
	}
	if b.Hospital != nil {
		keys = append(keys, "hospital")
	}
	if b.Booking != nil {
		keys = append(keys, "booking")
	}
	return keys
}

// Merge returns a new context with the contribution's present keys applied on top
func (b BookingContext) Merge(c Contribution) BookingContext {
	out := b.Clone()
	in := BookingContext(c).Clone()

	if in.PatientID != "" {
		out.PatientID = in.PatientID
	}
	if in.PatientData != nil {
		out.PatientData = in.PatientData
	}
	if in.Enhanced != nil {
		out.Enhanced = in.Enhanced
	}
	if in.EssentialInfo != nil {
		out.EssentialInfo = in.EssentialInfo
	}
	if in.Surgery != nil {
		out.Surgery = in.Surgery
	}
	if in.Surgeon != nil {
		out.Surgeon = in.Surgeon
	}
	if in.Implant != nil {
		out.Implant = in.Implant
	}
	if in.Hospital != nil {
		out.Hospital = in.Hospital
	}
	if in.Booking != nil {
		out.Booking = in.Booking
	}
	return out
}

// Clone returns a copy that shares no pointers with the receiver
func (b BookingContext) Clone() BookingContext {
	out := BookingContext{PatientID: b.PatientID}
	if b.PatientData != nil {
		out.PatientData = make(map[string]any, len(b.PatientData))
		for k, v := range b.PatientData {
			out.PatientData[k] = v
		}
	}
	if b.Enhanced != nil {
		v := *b.Enhanced
		out.Enhanced = &v
	}
	if b.EssentialInfo != nil {
		v := *b.EssentialInfo
		out.EssentialInfo = &v
	}
	if b.Surgery != nil {
		v := *b.Surgery
		out.Surgery = &v
	}
	if b.Surgeon != nil {
		v := *b.Surgeon
		out.Surgeon = &v
	}
	if b.Implant != nil {
		v := *b.Implant
		out.Implant = &v
	}
	if b.Hospital != nil {
		v := *b.Hospital
		v.Facilities = append([]string(nil), b.Hospital.Facilities...)
		out.Hospital = &v
	}
	if b.Booking != nil {
		v := *b.Booking
		out.Booking = &v
	}
	return out
}
