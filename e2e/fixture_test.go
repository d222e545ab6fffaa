//go:build e2e && unix

package main

const ecsFixture = `
[ecs]
[[ecs.items]]
name = "prod"
id = "arn:aws:ecs:eu-west-1:111122223333:cluster/prod"

[[ecs.items.children]]
name = "web"
id = "arn:aws:ecs:eu-west-1:111122223333:service/prod/web"

[[ecs.items.children.children]]
name = "0f1e2d3c"
id = "arn:aws:ecs:eu-west-1:111122223333:task/prod/0f1e2d3c"

[[ecs.items.children.children.children]]
name = "app"
aux = "0f1e2d3c-4444"

[[ecs.items.children]]
name = "worker"
id = "arn:aws:ecs:eu-west-1:111122223333:service/prod/worker"

[[ecs.items]]
name = "staging"
id = "arn:aws:ecs:eu-west-1:111122223333:cluster/staging"
error = "AccessDeniedException: not allowed to list services"
`

const ec2Fixture = `
[ec2]
[[ec2.items]]
name = "bastion (i-0abc)"
id = "i-0abc"

[[ec2.items]]
name = "db (i-0def)"
id = "i-0def"
`

const brokenFixture = `
[ecs]
error = "ExpiredTokenException: security token expired"
`
