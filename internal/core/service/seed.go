package service

import (
	"time"

	"github.com/inkpost/blog-system/internal/core/domain"
)

const day = 24 * time.Hour

// SamplePosts is the collection a fresh installation starts with.
func SamplePosts(now time.Time) []domain.Post {
	now = now.UTC()
	demo := domain.Identity{ID: "1", Email: "demo@example.com", Name: "Demo User", CreatedAt: now.Add(-10 * day)}
	jane := domain.Identity{ID: "2", Email: "jane@example.com", Name: "Jane Smith", CreatedAt: now.Add(-5 * day)}

	posts := []domain.Post{
		{
			ID:        "3",
			Title:     "Introduction to TypeScript",
			Content:   typescriptPost,
			Author:    jane,
			CreatedAt: now.Add(-2 * day),
			UpdatedAt: now.Add(-1 * day),
		},
		{
			ID:        "2",
			Title:     "Advanced CSS Techniques",
			Content:   cssPost,
			Author:    demo,
			CreatedAt: now.Add(-3 * day),
			UpdatedAt: now.Add(-3 * day),
		},
		{
			ID:        "1",
			Title:     "Getting Started with React",
			Content:   reactPost,
			Author:    jane,
			CreatedAt: now.Add(-5 * day),
			UpdatedAt: now.Add(-5 * day),
		},
	}
	for i := range posts {
		posts[i].Excerpt = domain.Excerpt(posts[i].Content)
	}
	return posts
}

const reactPost = `React is a JavaScript library for building user interfaces. It's maintained by Facebook and a community of individual developers and companies.

## Why React?

React allows developers to create large web applications that can change data, without reloading the page. Its main goal is to be fast, simple, and scalable.

## Key Features

- **Component-Based**: Build encapsulated components that manage their own state, then compose them to make complex UIs.
- **Declarative**: Design simple views for each state in your application.
- **Learn Once, Write Anywhere**: Develop new features without rewriting existing code.

## Getting Started

` + "```bash\nnpx create-react-app my-app\ncd my-app\nnpm start\n```" + `

This will create a new React application and start a development server.
`

const cssPost = `CSS has evolved significantly over the years, and modern CSS offers powerful features that make complex layouts and effects much easier to implement.

## CSS Grid Layout

CSS Grid Layout is a two-dimensional layout system for the web. It lets you lay out items in rows and columns.

` + "```css\n.container {\n  display: grid;\n  grid-template-columns: repeat(auto-fill, minmax(200px, 1fr));\n  grid-gap: 20px;\n}\n```" + `

## CSS Variables

CSS Variables allow you to define named values that are reused throughout your document.

` + "```css\n:root {\n  --main-bg-color: #f8f9fa;\n  --main-padding: 15px;\n}\n```" + `
`

const typescriptPost = `TypeScript is a strongly typed programming language that builds on JavaScript, giving you better tooling at any scale.

## Why TypeScript?

TypeScript adds static types to JavaScript, which helps catch errors early in the development process rather than at runtime.

## Basic Types

` + "```typescript\nlet isDone: boolean = false;\nlet decimal: number = 6;\nlet list: number[] = [1, 2, 3];\n```" + `

## Getting Started

` + "```bash\nnpm install -g typescript\ntsc --init\ntsc\n```" + `
`
