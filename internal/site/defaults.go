package site

import "folio/app/internal/portfolio"

// Placeholder content shown while the owner has not filled in their profile.
const (
	DefaultName         = "Jane Doe"
	DefaultTagline      = "Full Stack Developer & UI/UX Designer"
	DefaultProfileImage = "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400&q=80"
	DefaultResumeURL    = "/resume.pdf"

	// DefaultEditorDescription seeds the admin profile form.
	DefaultEditorDescription = "I'm a passionate developer with a keen eye for design and a commitment to creating intuitive, user-friendly applications."
	// DefaultDescription fills the public about section.
	DefaultDescription = DefaultEditorDescription + " With several years of experience in web development, I've honed my skills across various technologies and frameworks."
)

// DefaultSocialLinks returns the placeholder social profile URLs.
func DefaultSocialLinks() portfolio.SocialLinks {
	return portfolio.SocialLinks{
		GitHub:   "https://github.com",
		LinkedIn: "https://linkedin.com",
		Twitter:  "https://twitter.com",
	}
}

// DefaultProfile is the unsaved profile the admin editor starts from. Its id is empty.
func DefaultProfile() portfolio.Profile {
	return portfolio.Profile{
		Name:         DefaultName,
		Tagline:      DefaultTagline,
		Description:  DefaultEditorDescription,
		ProfileImage: DefaultProfileImage,
		ResumeURL:    DefaultResumeURL,
		SocialLinks:  DefaultSocialLinks(),
	}
}

// DefaultJourney is shown when no journey entry exists.
func DefaultJourney() []string {
	return []string{
		"Started my journey as a self-taught developer in 2018",
		"Graduated with a Computer Science degree in 2020",
		"Worked as a frontend developer at Tech Solutions Inc. for 2 years",
		"Led a team of developers at Innovation Labs from 2022-2023",
		"Currently working as a freelance full-stack developer",
	}
}

// DefaultSkills is shown when no skill exists.
func DefaultSkills() []SkillBar {
	return []SkillBar{
		{Name: "React", Level: 90},
		{Name: "TypeScript", Level: 85},
		{Name: "Node.js", Level: 80},
		{Name: "UI/UX Design", Level: 75},
		{Name: "Next.js", Level: 85},
		{Name: "Tailwind CSS", Level: 90},
	}
}
