package models

// UserPatch enumerates the profile fields a partial update may touch.
// A nil pointer means "leave untouched"; a pointer to the empty string
// means "explicitly clear". Email and password are never updatable
// through this path.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Bio          *string
	Skills       *string
	Country      *string
	LinkedIn     *string
	Twitter      *string
	Website      *string
	ProfilePhoto *string
}

// Fields returns the column assignments the patch carries.
func (p UserPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.FirstName != nil {
		fields["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		fields["last_name"] = *p.LastName
	}
	if p.Bio != nil {
		fields["bio"] = *p.Bio
	}
	if p.Skills != nil {
		fields["skills"] = *p.Skills
	}
	if p.Country != nil {
		fields["country"] = *p.Country
	}
	if p.LinkedIn != nil {
		fields["linkedin"] = *p.LinkedIn
	}
	if p.Twitter != nil {
		fields["twitter"] = *p.Twitter
	}
	if p.Website != nil {
		fields["website"] = *p.Website
	}
	if p.ProfilePhoto != nil {
		fields["profile_photo"] = *p.ProfilePhoto
	}
	return fields
}

// ProjectPatch enumerates the project fields a partial update may touch.
// ID and owner are never updatable.
type ProjectPatch struct {
	Title         *string
	Description   *string
	Category      *ProjectCategory
	Location      *string
	ExternalLink  *string
	Status        *ProjectStatus
	MainImage     *string
	GalleryImages *string
}

func (p ProjectPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Location != nil {
		fields["location"] = *p.Location
	}
	if p.ExternalLink != nil {
		fields["external_link"] = *p.ExternalLink
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	if p.MainImage != nil {
		fields["main_image"] = *p.MainImage
	}
	if p.GalleryImages != nil {
		fields["gallery_images"] = *p.GalleryImages
	}
	return fields
}
