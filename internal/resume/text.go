// Package resume renders stored resume documents as plain text and builds
// the interview-preparation prompt payload from them.
package resume

import (
	"fmt"
	"strings"

	"interview-tracker/internal/models"
)

// Text renders a structured resume as plain text: header block, summary,
// skills, experience with responsibility bullets, education. Missing fields
// are skipped; rendering never fails.
func Text(r *models.Resume) string {
	if r == nil {
		return ""
	}

	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add(strings.ToUpper(r.Name))
	if r.RoleName != "" {
		add(r.RoleName)
	}
	if r.Email != "" || r.Phone != "" {
		add(strings.TrimSpace(r.Email + "  " + r.Phone))
	}
	if r.Address != "" {
		add(r.Address)
	}
	if r.LinkedIn != "" {
		add("LinkedIn: " + r.LinkedIn)
	}
	add("")

	if r.ProfileSummary != "" {
		add("PROFILE SUMMARY:")
		add(stripMarkdown(r.ProfileSummary))
		add("")
	}

	if r.Skills != "" {
		add("SKILLS:")
		add(strings.ReplaceAll(stripMarkdown(r.Skills), "\t", "    "))
		add("")
	}

	if len(r.Experience) > 0 {
		add("PROFESSIONAL EXPERIENCE:")
		for _, exp := range r.Experience {
			header := fmt.Sprintf("• %s — %s", exp.Role, exp.Company)
			if exp.FromDate != "" || exp.ToDate != "" {
				header += fmt.Sprintf(" (%s - %s)", exp.FromDate, exp.ToDate)
			}
			add(strings.TrimSpace(header))
			if exp.Location != "" {
				add("  Location: " + exp.Location)
			}
			for _, bullet := range splitBullets(exp.Responsibilities) {
				add("  - " + bullet)
			}
			add("")
		}
	}

	if len(r.Education) > 0 {
		add("EDUCATION:")
		for _, edu := range r.Education {
			line := "• " + edu.Degree
			if edu.Category != "" {
				line += " in " + edu.Category
			}
			if edu.University != "" {
				line += " — " + edu.University
			}
			if edu.Location != "" {
				line += " (" + edu.Location + ")"
			}
			add(line)
			if edu.FromYear != "" || edu.ToYear != "" {
				add(fmt.Sprintf("  Years: %s - %s", edu.FromYear, edu.ToYear))
			}
		}
		add("")
	}

	return strings.Join(lines, "\n")
}

func stripMarkdown(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

func splitBullets(s string) []string {
	var out []string
	for _, line := range strings.Split(stripMarkdown(s), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// BuildPrompt assembles the clipboard payload: the rendered resume, the job
// description pasted by the user, and the fixed coaching template.
func BuildPrompt(resumeText, jobDescription string) string {
	return resumeText + "\n\nAbove is my resume.\n\n\n\n\n\n\n" +
		jobDescription + "\n\n\n\n\n\n\n" +
		"Above is job description\n\n\n\n\n\n\n" +
		promptTemplate
}

// promptTemplate is the fixed interview-coaching instruction block appended
// to every generated prompt.
const promptTemplate = `
I need to have a call with company. When I give you interview's question, you should give me my professional answer based on resume.
When I give you a question, plz give me gimme in a speaking english, and then give me key points. You should put some words like "you know", "well" or etc to simulate real person's speaking.

When I describe about myself in previous roles, I should focus on explaning how I worked with skills from job description first, and then describe other skills as well.
Flexibly align my professional experience well fit for job description. If job description requires Python, describe most of my work in my experience were in Python. If it is Go, please describe like Go. Double check if you give me conversational words.

When I need to describe about my past project, you should give me very details of project likely project name, tech stack for backend, frontend and cloud, and project impact, client satisfy and etc. Give me in professional, but super easy english words. Don't put any short form like "I'd". If there's a simplified word, like IT -> give me expanded words as well in () -> IT(Information Technology)

If question is not a general question, like explaining about my experience or project I have built, and it requires some specific answer, plz give me key points of answer in one paragraph so that the interviewer could know that I'm very experienced with that by one sentences. After that, we can describe in details about key answer.
If question is a technical question, give a short, strong key answer for that first, and then describe in details.

And for technical questions, when you answer, don't put any code like ConfigType.BOOL.value, but please give me as a readable code, like value property of BOOL which is property of ConfigType object.

Avoid using "we" statements

FYI, my contract has finished before 2 weeks, and I'm actively looking for a new job opportunity, so that I can join any company immediately.
Don't put following words - though

For all inputs, it is more likely a block of text, so check with previous input, and don't answer for repeated questions.

When you describe about project, plz dont mention about "scalable" or "reliable" - It's too common answer.

For system design questions, don't just collect requirements from question, but find out possible use cases yourself.

For questions like what you're looking for in your next role, don't too focus on things in JD. Please focus on general ones, not JD-specific things.

ok?
`
